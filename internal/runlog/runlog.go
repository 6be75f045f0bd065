package runlog

import (
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
)

const (
	DefaultInputPath  = "result.csv"
	DefaultOutputPath = "lr2result.csv"
)

// Record is one run timestamp split into its calendar fields.
type Record struct {
	Years  int `csv:"years"`
	Month  int `csv:"month"`
	Day    int `csv:"day"`
	Hour   int `csv:"hour"`
	Minute int `csv:"minute"`
	Second int `csv:"second"`
}

func NewRecord(now time.Time) *Record {
	return &Record{
		Years:  now.Year(),
		Month:  int(now.Month()),
		Day:    now.Day(),
		Hour:   now.Hour(),
		Minute: now.Minute(),
		Second: now.Second(),
	}
}

// Load reads all records from path. A missing or empty file yields an empty table.
func Load(path string) ([]*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Record{}, nil
		}

		return nil, errors.Wrapf(errors.ErrCodeRunLogReadFailed, err, "failed to open %s", path)
	}
	defer file.Close()

	records := []*Record{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []*Record{}, nil
		}

		return nil, errors.Wrapf(errors.ErrCodeRunLogReadFailed, err, "failed to parse %s", path)
	}

	return records, nil
}

// Append loads input, adds a record for now and writes every record to output.
// Input and output may be the same file.
func Append(input, output string, now time.Time) ([]*Record, error) {
	records, err := Load(input)
	if err != nil {
		return nil, err
	}

	records = append(records, NewRecord(now))

	if err := Write(output, records); err != nil {
		return nil, err
	}

	return records, nil
}

// Write replaces path with the header and the given records.
func Write(path string, records []*Record) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeRunLogWriteFailed, err, "failed to create %s", path)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return errors.Wrapf(errors.ErrCodeRunLogWriteFailed, err, "failed to write %s", path)
	}

	return nil
}
