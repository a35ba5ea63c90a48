package msgimport

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Writer is implemented by services.BatchService.
type Writer interface {
	InsertMessage(ctx context.Context, bottleID, messageID int64, in models.MessageInput) error
}

type Options struct {
	CSVPath string
	// ImageDir resolves the img column. Empty means the directory of CSVPath.
	ImageDir string
	DryRun   bool
	Logger   Logger
}

type Result struct {
	Processed   int
	Inserted    int
	Rejected    int
	ParseErrors int
}

type headerIndex struct {
	bottleID  int
	messageID int
	title     int
	text      int
	image     int
	author    int
	time      int
	crc       int
	longitude int
	latitude  int
}

// ImportCSV reads a semicolon separated export and inserts every row as a
// single message. Rows the service rejects are counted and skipped; an
// unavailable store aborts the import.
func ImportCSV(ctx context.Context, w Writer, opts Options) (Result, error) {
	csvPath := strings.TrimSpace(opts.CSVPath)
	if csvPath == "" {
		return Result{}, errors.New("csv path is empty")
	}
	if opts.ImageDir == "" {
		opts.ImageDir = filepath.Dir(csvPath)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	return Import(ctx, w, file, opts)
}

func Import(ctx context.Context, w Writer, r io.Reader, opts Options) (Result, error) {
	if w == nil && !opts.DryRun {
		return Result{}, errors.New("writer is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	idx, err := mapHeaders(headers)
	if err != nil {
		return Result{}, fmt.Errorf("invalid csv header: %w", err)
	}

	result := Result{}
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Printf("line %d: read error: %v", line, err)
			result.ParseErrors++
			continue
		}
		in, err := parseRow(record, idx, opts.ImageDir)
		if err != nil {
			logger.Printf("line %d: %v", line, err)
			result.ParseErrors++
			continue
		}
		result.Processed++

		if opts.DryRun {
			result.Inserted++
			continue
		}
		if err := w.InsertMessage(ctx, *in.BottleID, *in.MessageID, in); err != nil {
			apiErr := problem.From(err)
			if apiErr.Status == http.StatusServiceUnavailable {
				return result, fmt.Errorf("line %d: %w", line, err)
			}
			logger.Printf("line %d: rejected: %v", line, apiErr)
			result.Rejected++
			continue
		}
		result.Inserted++
	}

	logger.Printf("done: processed=%d inserted=%d rejected=%d parse_errors=%d", result.Processed, result.Inserted, result.Rejected, result.ParseErrors)
	return result, nil
}

func mapHeaders(headers []string) (headerIndex, error) {
	idx := map[string]int{}
	for i, h := range headers {
		key := strings.TrimSpace(strings.ToLower(h))
		idx[key] = i
	}
	required := []string{"btl_id", "msg_id", "txt", "author", "crc"}
	for _, key := range required {
		if _, ok := idx[key]; !ok {
			return headerIndex{}, fmt.Errorf("missing column %q", key)
		}
	}
	timeKey := "time"
	if _, ok := idx[timeKey]; !ok {
		if _, ok := idx["timestamp"]; ok {
			timeKey = "timestamp"
		} else {
			return headerIndex{}, fmt.Errorf("missing column %q (or timestamp)", timeKey)
		}
	}
	optional := func(key string) int {
		if v, ok := idx[key]; ok {
			return v
		}
		return -1
	}
	return headerIndex{
		bottleID:  idx["btl_id"],
		messageID: idx["msg_id"],
		title:     optional("title"),
		text:      idx["txt"],
		image:     optional("img"),
		author:    idx["author"],
		time:      idx[timeKey],
		crc:       idx["crc"],
		longitude: optional("longitude"),
		latitude:  optional("latitude"),
	}, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// text returns nil only when the column is absent from the header or the
// record, so that validation reports it as missing. An empty cell is "".
func text(record []string, i int) *string {
	if i < 0 || i >= len(record) {
		return nil
	}
	v := strings.TrimSpace(record[i])
	return &v
}

// optionalText treats an empty cell of an optional column as not given.
func optionalText(record []string, i int) *string {
	if field(record, i) == "" {
		return nil
	}
	return text(record, i)
}

func parseRow(record []string, idx headerIndex, imageDir string) (models.MessageInput, error) {
	bottleID, err := strconv.ParseInt(field(record, idx.bottleID), 10, 64)
	if err != nil {
		return models.MessageInput{}, fmt.Errorf("invalid btl_id %q", field(record, idx.bottleID))
	}
	messageID, err := strconv.ParseInt(field(record, idx.messageID), 10, 64)
	if err != nil {
		return models.MessageInput{}, fmt.Errorf("invalid msg_id %q", field(record, idx.messageID))
	}

	in := models.MessageInput{
		BottleID:  &bottleID,
		MessageID: &messageID,
		Title:     optionalText(record, idx.title),
		Text:      text(record, idx.text),
		Author:    text(record, idx.author),
		Time:      text(record, idx.time),
		Crc:       text(record, idx.crc),
	}

	loc, err := parseLocation(field(record, idx.longitude), field(record, idx.latitude))
	if err != nil {
		return models.MessageInput{}, err
	}
	in.Location = loc

	if name := field(record, idx.image); name != "" {
		data, err := os.ReadFile(filepath.Join(imageDir, filepath.Clean("/"+name)))
		if err != nil {
			return models.MessageInput{}, fmt.Errorf("img %q: %w", name, err)
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		in.Image = &encoded
	}
	return in, nil
}

func parseLocation(lon, lat string) (*models.LocationInput, error) {
	if lon == "" && lat == "" {
		return nil, nil
	}
	loc := &models.LocationInput{}
	if lon != "" {
		v, err := strconv.ParseFloat(lon, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q", lon)
		}
		loc.Longitude = &v
	}
	if lat != "" {
		v, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q", lat)
		}
		loc.Latitude = &v
	}
	return loc, nil
}
