package wordlist

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQueryParams locates a table with one word per row.
type BigQueryParams struct {
	Project  string
	Table    string // dataset.table
	Column   string
	Location string
}

func (p BigQueryParams) query() string {
	return fmt.Sprintf("SELECT DISTINCT %s FROM `%s.%s` WHERE %s IS NOT NULL", p.Column, p.Project, p.Table, p.Column)
}

// FromBigQuery fetches every word of the table, sorted bytewise and without duplicates.
func FromBigQuery(ctx context.Context, p BigQueryParams) ([]string, error) {
	if p.Project == "" || p.Table == "" || p.Column == "" {
		return nil, fmt.Errorf("bigquery project, table and column are required")
	}

	client, err := bigquery.NewClient(ctx, p.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(p.query())
	q.Location = p.Location

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}
	return collect(it)
}

type rowIterator interface {
	Next(dst interface{}) error
}

// collect drains it. BigQuery's collation is not bytewise, so the words are sorted here.
func collect(it rowIterator) ([]string, error) {
	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		if len(row) == 0 {
			return nil, fmt.Errorf("empty row")
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	slices.Sort(words)
	return slices.Compact(words), nil
}
