package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histogramText(rows int) string {
	var b strings.Builder
	b.WriteString("<b>600000 筹码分布</b>\n<pre>\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%6.2f ████████░░░░ %03d\n", 10+float64(i)/100, i)
	}
	b.WriteString("</pre>")
	return b.String()
}

// textLines drops the <pre> tags and blank lines so parts can be compared
// with the original text line by line.
func textLines(parts ...string) []string {
	var out []string
	for _, p := range parts {
		p = strings.ReplaceAll(strings.ReplaceAll(p, preOpen, ""), preClose, "")
		for _, line := range strings.Split(p, "\n") {
			if line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

func TestSplitMessage_Short(t *testing.T) {
	assert.Equal(t, []string{"<b>hi</b>"}, SplitMessage("<b>hi</b>", maxMessageRunes))
}

func TestSplitMessage_ReopensPreBlocks(t *testing.T) {
	text := histogramText(40)
	parts := SplitMessage(text, 200)
	require.Greater(t, len(parts), 1)

	for i, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 200, "part %d", i)
		assert.Equal(t, strings.Count(p, preOpen), strings.Count(p, preClose), "part %d: %q", i, p)
	}
	assert.True(t, strings.HasPrefix(parts[1], preOpen))
	assert.Equal(t, textLines(text), textLines(parts...))
}

func TestSplitMessage_LongLine(t *testing.T) {
	text := strings.Repeat("筹", 250)
	parts := SplitMessage(text, 100)
	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 100)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestTelegramNotifier_SendSplitsLongText(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		mu.Lock()
		sent = append(sent, got["text"])
		mu.Unlock()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	text := histogramText(400)
	require.Greater(t, utf8.RuneCountInString(text), maxMessageRunes)
	require.NoError(t, tn.Send(text))

	mu.Lock()
	defer mu.Unlock()
	require.Greater(t, len(sent), 1)
	for _, s := range sent {
		assert.LessOrEqual(t, utf8.RuneCountInString(s), maxMessageRunes)
	}
	assert.Equal(t, textLines(text), textLines(sent...))
}
