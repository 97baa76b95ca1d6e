package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

const utf8BOM = "\ufeff"

// eachLine calls fn with every line of r and its 1-based number. Lines keep
// no trailing newline and have no length limit.
func eachLine(r io.Reader, fn func(lineNo int, line string) error) error {
	br := bufio.NewReaderSize(r, 64*1024)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if lineNo == 1 {
				line = strings.TrimPrefix(line, utf8BOM)
			}
			if fnErr := fn(lineNo, strings.TrimRight(line, "\r\n")); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading line %d: %w", lineNo, err)
		}
	}
}

// decodeStrict decodes exactly one JSON value from s into v, keeping numbers
// as json.Number.
func decodeStrict(s string, v any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// decodeObject decodes a line holding a single JSON object.
func decodeObject(line string) (domain.RawRecord, error) {
	var rec domain.RawRecord
	if err := decodeStrict(line, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("line is not a JSON object")
	}
	return rec, nil
}

// decodeLine decodes a trimmed source line. Lines wrapped in brackets hold
// an array of records; any other line holds one record.
func decodeLine(line string) ([]domain.RawRecord, error) {
	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		var recs []domain.RawRecord
		if err := decodeStrict(line, &recs); err != nil {
			return nil, err
		}
		for i, rec := range recs {
			if rec == nil {
				return nil, fmt.Errorf("array element %d is not a JSON object", i)
			}
		}
		return recs, nil
	}

	rec, err := decodeObject(line)
	if err != nil {
		return nil, err
	}
	return []domain.RawRecord{rec}, nil
}
