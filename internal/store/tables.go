package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableProgress     = "progress_records"
	tableTierStats    = "tier_stats"
	tableAnswers      = "answer_events"
	tableTierChanges  = "tier_change_events"
	tableSessions     = "session_events"
	tableLLMRequests  = "llm_request_events"
	progressSingleton = 1
)

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
}

// eventTable declares a table carrying the columns every event shares:
// an auto-increment id, the global sequence and a timestamp.
func eventTable(name string, cols ...*schema.Column) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(idColumn()).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: "timestamp", Type: field.TypeTime})
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t.AddIndex(name+"_timestamp", false, []string{"timestamp"})
}

func str(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Default: ""}
}

func integer(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0}
}

func tables() []*schema.Table {
	progress := schema.NewTable(tableProgress).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt}).
		AddColumn(str("current_tier")).
		AddColumn(integer("questions_answered")).
		AddColumn(integer("correct_answers")).
		AddColumn(integer("total_score")).
		AddColumn(integer("sessions_played")).
		AddColumn(&schema.Column{Name: "best_accuracy", Type: field.TypeFloat64, Default: 0}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeTime}).
		AddColumn(&schema.Column{Name: "updated_at", Type: field.TypeTime})

	tierStats := schema.NewTable(tableTierStats).
		AddPrimary(&schema.Column{Name: "tier", Type: field.TypeString}).
		AddColumn(integer("answered")).
		AddColumn(integer("correct"))

	answers := eventTable(tableAnswers,
		str("session_id"),
		str("tier"),
		str("question_id"),
		&schema.Column{Name: "question_text", Type: field.TypeString, Size: 2048, Default: ""},
		str("chosen_answer"),
		str("correct_answer"),
		&schema.Column{Name: "correct", Type: field.TypeBool, Default: false},
		integer("points"),
	).AddIndex("answer_events_session_id", false, []string{"session_id"})

	tierChanges := eventTable(tableTierChanges,
		str("session_id"),
		str("from_tier"),
		str("to_tier"),
		str("reason"),
		&schema.Column{Name: "accuracy", Type: field.TypeFloat64, Default: 0},
	)

	sessions := eventTable(tableSessions,
		str("session_id"),
		str("action"),
		str("tier"),
		integer("questions_served"),
		integer("correct_answers"),
		integer("score"),
		integer("duration_secs"),
	)

	llmRequests := eventTable(tableLLMRequests,
		str("provider"),
		str("model"),
		str("purpose"),
		integer("input_tokens"),
		integer("output_tokens"),
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2048, Default: ""},
	)

	return []*schema.Table{progress, tierStats, answers, tierChanges, sessions, llmRequests}
}

// migrate creates or updates every table the store uses.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables()...)
}
