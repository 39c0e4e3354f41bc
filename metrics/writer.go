package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ClassificationRecord is one analyzed pile size.
type ClassificationRecord struct {
	Size int
	Type string
}

// AnswerRecord is one derived answer of a game analysis.
type AnswerRecord struct {
	Game     string // Operations and threshold, e.g. "+1 *2 >=29"
	Question string
	Sizes    []int // Empty when there is no answer
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteClassifications(records []ClassificationRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{strconv.Itoa(record.Size), record.Type})
	}
	return w.write("classifications.csv", []string{"size", "type"}, rows)
}

func (w *Writer) WriteAnswers(records []AnswerRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		sizes := make([]string, len(record.Sizes))
		for i, size := range record.Sizes {
			sizes[i] = strconv.Itoa(size)
		}
		rows = append(rows, []string{record.Game, record.Question, strings.Join(sizes, " ")})
	}
	return w.write("answers.csv", []string{"game", "question", "sizes"}, rows)
}

func (w *Writer) WriteMetric(metric ClassifyMetric) error {
	header := []string{"duration", "classifications", "applications", "cache_hits", "cycles", "horizon_cutoffs"}
	row := []string{
		metric.Duration.String(),
		strconv.Itoa(metric.Classifications),
		strconv.Itoa(metric.Applications),
		strconv.Itoa(metric.CacheHits),
		strconv.Itoa(metric.Cycles),
		strconv.Itoa(metric.HorizonCutoffs),
	}
	return w.write("metrics.csv", header, [][]string{row})
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows) // Flushes
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}

	return nil
}
