package notifier

import (
	"fmt"
	"html"
	"strings"

	"ChipSentinel/internal/model"
)

// FormatChipReport formats a chip distribution snapshot into a Telegram message.
func FormatChipReport(snap *model.DistributionSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>筹码分布</b> %s | %s\n\n", html.EscapeString(snap.Symbol), snap.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("收盘价: %.2f\n", snap.CurrentPrice))
	b.WriteString(fmt.Sprintf("平均成本: %.2f", snap.AvgCost))
	if snap.AvgCost > 0 {
		b.WriteString(fmt.Sprintf(" (%+.1f%%)", (snap.CurrentPrice-snap.AvgCost)/snap.AvgCost*100))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("获利比例: %.1f%%\n\n", snap.BenefitPart*100))

	b.WriteString("📐 <b>成本区间:</b>\n")
	for _, band := range []model.Band{snap.Percent90, snap.Percent70} {
		b.WriteString(fmt.Sprintf("  %.0f%%筹码: %.2f - %.2f  集中度 %.1f%%\n",
			band.Percent*100, band.Low, band.High, band.Concentration*100))
	}

	b.WriteString(fmt.Sprintf("\n窗口: %d 个交易日 | 价格区间 %.2f - %.2f\n", snap.Days, snap.MinPrice, snap.MaxPrice))
	if snap.Partial {
		b.WriteString(fmt.Sprintf("⚠️ 历史数据不足 %d 日，结果仅供参考\n", snap.Requested))
	}
	return b.String()
}

// FormatHistogram renders the distribution as a text histogram of rows
// price levels, highest price first. Rows at or below the close are drawn
// as profit chips.
func FormatHistogram(snap *model.DistributionSnapshot, rows int) string {
	n := len(snap.Chips)
	if n == 0 || rows <= 0 {
		return ""
	}
	if rows > n {
		rows = n
	}

	per := (n + rows - 1) / rows
	sums := make([]float64, 0, rows)
	tops := make([]float64, 0, rows)
	maxSum := 0.0
	for start := 0; start < n; start += per {
		end := start + per
		if end > n {
			end = n
		}
		s := 0.0
		for _, c := range snap.Chips[start:end] {
			s += c
		}
		sums = append(sums, s)
		tops = append(tops, snap.Prices[end-1])
		if s > maxSum {
			maxSum = s
		}
	}

	const width = 24
	var b strings.Builder
	b.WriteString("<pre>")
	for i := len(sums) - 1; i >= 0; i-- {
		bar := 0
		if maxSum > 0 {
			bar = int(sums[i] / maxSum * width)
		}
		mark := "░"
		if tops[i] <= snap.CurrentPrice {
			mark = "█"
		}
		line := fmt.Sprintf("%8.2f %s", tops[i], strings.Repeat(mark, bar))
		if i > 0 && tops[i-1] < snap.CurrentPrice && snap.CurrentPrice <= tops[i] {
			line += " ◀"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "可用命令:\n" +
		"• /chip [N] 筹码分布 (N 为回看交易日偏移)\n" +
		"• /hist [N] 筹码分布直方图\n" +
		"• /sync 同步历史K线"
}
