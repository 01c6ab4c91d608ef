package puzzles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strings"
)

// AssignmentPrefix turns a JSON document into a script that the import
// script can load into a puzzles variable.
const AssignmentPrefix = "var puzzles="

var ErrNoAssignment = errors.New("missing puzzles assignment")

const (
	idChars  = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	IDLength = 5

	BaseRating    = 1000
	RatingPerMove = 200
	MaxRating     = 2800
)

// PrependAssignment rewrites the file at path in place with AssignmentPrefix
// in front of its raw bytes.
func PrependAssignment(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, AssignmentPrefix); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func StripAssignment(data []byte) ([]byte, error) {
	rest, ok := bytes.CutPrefix(bytes.TrimLeft(data, " \t\r\n\uFEFF"), []byte(AssignmentPrefix))
	if !ok {
		return nil, ErrNoAssignment
	}
	return rest, nil
}

// Rating estimates a starting rating from the solution length alone.
func Rating(line string) float64 {
	moves := len(strings.Split(strings.TrimSpace(line), " "))
	full := int(math.Ceil(float64(moves) / 2))
	return float64(min(BaseRating+(full-1)*RatingPerMove, MaxRating))
}

// ApplyDefaults fills in vote, plays and glicko when the generator left
// them out.
func ApplyDefaults(doc map[string]any) {
	if _, ok := doc["vote"]; !ok {
		doc["vote"] = 1.0
	}
	if _, ok := doc["plays"]; !ok {
		doc["plays"] = 0
	}
	if _, ok := doc["glicko"]; !ok {
		line, _ := doc["line"].(string)
		doc["glicko"] = map[string]any{
			"r": Rating(line),
			"d": 500.0,
			"v": 0.09,
		}
	}
}

type IDGenerator func() string

func RandomID() string {
	var sb strings.Builder
	sb.Grow(IDLength)
	for range IDLength {
		sb.WriteByte(idChars[rand.IntN(len(idChars))])
	}
	return sb.String()
}

// UniqueID draws ids until exists reports one as free.
func UniqueID(gen IDGenerator, exists func(string) (bool, error)) (string, error) {
	for {
		id := gen()
		taken, err := exists(id)
		if err != nil {
			return "", fmt.Errorf("error checking puzzle id %v: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
}
