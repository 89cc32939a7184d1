package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// csvFormatter formats ranked videos as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

var videoHeaders = []string{
	"Rank",
	"Keyword",
	"Title",
	"Channel",
	"Subscribers",
	"Views",
	"Days Ago",
	"Viral Score",
	"Viral Gem",
	"Trend",
	"URL",
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	return writeCSV(func(w *csv.Writer) error {
		if err := w.Write(videoHeaders); err != nil {
			return err
		}
		return writeVideoRows(w, report.Keyword, report)
	})
}

func (f *csvFormatter) FormatKeywords(report *KeywordReport) ([]byte, error) {
	return writeCSV(func(w *csv.Writer) error {
		if err := w.Write([]string{"Rank", "Niche", "Keyword"}); err != nil {
			return err
		}
		for i, kw := range report.Keywords {
			if err := w.Write([]string{strconv.Itoa(i + 1), report.Niche, kw}); err != nil {
				return err
			}
		}
		return nil
	})
}

// FormatScan writes one row per viral gem of every keyword
func (f *csvFormatter) FormatScan(report *ScanReport) ([]byte, error) {
	return writeCSV(func(w *csv.Writer) error {
		if err := w.Write(videoHeaders); err != nil {
			return err
		}
		for _, res := range report.Results {
			if res.Err != nil {
				continue
			}
			if err := writeVideoRows(w, res.Keyword, &Report{Cards: res.Gems(report.TopGems)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeVideoRows(w *csv.Writer, keyword string, report *Report) error {
	for i, c := range report.Cards {
		record := []string{
			strconv.Itoa(i + 1),
			keyword,
			oneLine(c.Record.Title),
			c.Record.ChannelName,
			strconv.FormatInt(c.Record.SubscriberCount, 10),
			strconv.FormatInt(c.Record.ViewCount, 10),
			strconv.Itoa(c.Record.PublishedDaysAgo),
			strconv.FormatFloat(c.Record.ViralScore, 'f', -1, 64),
			strconv.FormatBool(c.Gem),
			string(c.Record.EstimatedTrend),
			c.Record.VideoURL,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

func writeCSV(fill func(w *csv.Writer) error) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := fill(writer); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return b.Bytes(), nil
}
