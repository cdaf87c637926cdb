package results

import (
	"bytes"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

type scoreKind uint8

const (
	scoreAbsent scoreKind = iota
	scoreNumber
	scoreText
)

// Score is a nullable set score as sent by the results service. The service
// sends numbers, but strings are tolerated.
type Score struct {
	kind scoreKind
	text string
}

func NumberScore(n int) Score {
	return Score{kind: scoreNumber, text: strconv.Itoa(n)}
}

func TextScore(s string) Score {
	return Score{kind: scoreText, text: s}
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = Score{}
	case data[0] == '"':
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Score{kind: scoreText, text: text}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*s = Score{kind: scoreNumber, text: string(data)}
	default:
		// booleans, objects and arrays carry no score
		*s = Score{}
	}
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case scoreNumber:
		return []byte(s.text), nil
	case scoreText:
		return sonic.Marshal(s.text)
	default:
		return []byte("null"), nil
	}
}

// Counts reports whether the score takes part in a score line. Numeric zero
// counts as absent, the same as null; a text score counts when non-empty,
// whitespace included.
func (s Score) Counts() bool {
	switch s.kind {
	case scoreNumber:
		v, err := strconv.ParseFloat(s.text, 64)
		return err == nil && v != 0
	case scoreText:
		return s.text != ""
	default:
		return false
	}
}

func (s Score) String() string {
	return s.text
}
