// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tfctl/csvdiff/internal/table"
)

// Target is a Postgres table to read as a dataset.
type Target struct {
	// ConnString is the URL with the table and order parameters removed.
	ConnString string
	Table      pgx.Identifier
	Order      []string
	// Label names the dataset in messages. Any password is redacted.
	Label string
}

// ParseTarget splits a postgres:// spec into connection string, table and
// ordering. The table may be schema qualified ("public.accounts").
func ParseTarget(spec string) (Target, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return Target{}, fmt.Errorf("invalid postgres URL: %w", err)
	}

	q := u.Query()
	name := q.Get("table")
	if name == "" {
		return Target{}, errors.New("postgres URL needs a table parameter")
	}

	t := Target{Table: pgx.Identifier(strings.Split(name, "."))}
	for _, col := range strings.Split(q.Get("order"), ",") {
		if col = strings.TrimSpace(col); col != "" {
			t.Order = append(t.Order, col)
		}
	}

	q.Del("table")
	q.Del("order")
	u.RawQuery = q.Encode()
	t.ConnString = u.String()

	label := *u
	label.RawQuery = ""
	label.Path = strings.TrimSuffix(label.Path, "/") + "/" + name
	t.Label = label.Redacted()
	return t, nil
}

// Query is the SELECT that reads the whole table.
func (t Target) Query() string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(t.Table.Sanitize())
	for i, col := range t.Order {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(pgx.Identifier{col}.Sanitize())
	}
	return sb.String()
}

func openPostgres(ctx context.Context, spec string) (*table.Dataset, error) {
	t, err := ParseTarget(spec)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, t.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", t.Label, err)
	}
	defer conn.Close(ctx)

	// Text results give every column its canonical Postgres rendering.
	rows, err := conn.Query(ctx, t.Query(), pgx.QueryResultFormats{pgx.TextFormatCode})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.Label, err)
	}
	return readRows(t.Label, rows)
}

// readRows drains rows into a dataset. NULL reads as an empty string.
func readRows(name string, rows pgx.Rows) (*table.Dataset, error) {
	defer rows.Close()

	fds := rows.FieldDescriptions()
	ds := &table.Dataset{Name: name, Fields: make([]string, len(fds))}
	for i, fd := range fds {
		ds.Fields[i] = fd.Name
	}

	for rows.Next() {
		raw := rows.RawValues()
		rec := make([]string, len(raw))
		for i, v := range raw {
			rec[i] = string(v)
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return ds, nil
}
