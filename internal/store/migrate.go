package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const llmEventsTable = "llm_request_events"

// Column names of llmEventsTable.
const (
	colID           = "id"
	colTimestamp    = "timestamp"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

// migrate creates tables and indexes that do not exist yet.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	b := entsql.Dialect(dialect.SQLite)

	stmts := []entsql.Querier{
		b.CreateTable(llmEventsTable).IfNotExists().
			Columns(
				entsql.Column(colID).Type("integer").Attr("PRIMARY KEY AUTOINCREMENT"),
				// Unix milliseconds, UTC.
				entsql.Column(colTimestamp).Type("integer").Attr("NOT NULL"),
				entsql.Column(colProvider).Type("text").Attr("NOT NULL"),
				entsql.Column(colModel).Type("text").Attr("NOT NULL"),
				entsql.Column(colPurpose).Type("text").Attr("NOT NULL"),
				entsql.Column(colInputTokens).Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column(colOutputTokens).Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column(colLatencyMs).Type("integer").Attr("NOT NULL DEFAULT 0"),
				entsql.Column(colSuccess).Type("bool").Attr("NOT NULL"),
				entsql.Column(colErrorMessage).Type("text").Attr("NOT NULL DEFAULT ''"),
				entsql.Column(colRequestBody).Type("text").Attr("NOT NULL DEFAULT ''"),
				entsql.Column(colResponseBody).Type("text").Attr("NOT NULL DEFAULT ''"),
			),
		b.CreateIndex("llmrequestevent_timestamp").IfNotExists().
			Table(llmEventsTable).Columns(colTimestamp),
		b.CreateIndex("llmrequestevent_purpose").IfNotExists().
			Table(llmEventsTable).Columns(colPurpose),
		b.CreateIndex("llmrequestevent_model").IfNotExists().
			Table(llmEventsTable).Columns(colModel),
	}

	for _, st := range stmts {
		query, args := st.Query()
		var res sql.Result
		if err := drv.Exec(ctx, query, args, &res); err != nil {
			return fmt.Errorf("exec %q: %w", query, err)
		}
	}
	return nil
}
