package chips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWindow_Trailing(t *testing.T) {
	bars := waveBars(300)
	w, err := SelectWindow(bars, 299, 0, 210)
	require.NoError(t, err)
	assert.Len(t, w.Bars, 210)
	assert.False(t, w.Partial())
	assert.Equal(t, bars[90].Date, w.Bars[0].Date)
	assert.Equal(t, bars[299].Date, w.Last().Date)
}

func TestSelectWindow_ExcludesRange(t *testing.T) {
	bars := waveBars(400)
	w, err := SelectWindow(bars, 399, 120, 210)
	require.NoError(t, err)
	assert.Len(t, w.Bars, 210)
	assert.Equal(t, bars[70].Date, w.Bars[0].Date)
	assert.Equal(t, bars[279].Date, w.Last().Date)
}

func TestSelectWindow_ShortHistoryUsesAllBars(t *testing.T) {
	bars := waveBars(300)
	w, err := SelectWindow(bars, 299, 120, 210)
	require.NoError(t, err)
	assert.Len(t, w.Bars, 180)
	assert.True(t, w.Partial())
	assert.Equal(t, 210, w.Requested)
	assert.Equal(t, bars[0].Date, w.Bars[0].Date)
	assert.Equal(t, bars[179].Date, w.Last().Date)
}

func TestSelectWindow_EndPastSeriesIsClamped(t *testing.T) {
	bars := waveBars(50)
	w, err := SelectWindow(bars, 80, 0, 20)
	require.NoError(t, err)
	assert.Len(t, w.Bars, 20)
	assert.Equal(t, bars[49].Date, w.Last().Date)
}

func TestSelectWindow_Errors(t *testing.T) {
	bars := waveBars(50)

	_, err := SelectWindow(bars, 10, 50, 20)
	assert.ErrorIs(t, err, ErrEmptyWindow, "window ending before the first bar")

	_, err = SelectWindow(nil, -1, 0, 20)
	assert.ErrorIs(t, err, ErrEmptyWindow, "no bars at all")

	_, err = SelectWindow(bars, 49, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument, "zero trading days")
}
