package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableSQL_AutoKey(t *testing.T) {
	d := widgetDescriptor(t)

	want := "CREATE TABLE IF NOT EXISTS widget (\n" +
		"\tid INTEGER NOT NULL,\n" +
		"\tname VARCHAR(512) NOT NULL,\n" +
		"\tscore DOUBLE,\n" +
		"\tPRIMARY KEY (id)\n" +
		")"
	assert.Equal(t, want, d.CreateTableSQL())
}

func TestCreateTableSQL_CompositeKey(t *testing.T) {
	d, err := New[widget]("widget").
		Key("id", Int64, func(w *widget) any { return w.ID }).
		Key("name", String, func(w *widget) any { return w.Name }).
		Column("score", Double, func(w *widget) any { return w.Score }).
		Build()
	require.NoError(t, err)

	sql := d.CreateTableSQL()
	// Caller-assigned Int64 keys keep their BIGINT type token; only an
	// auto-increment key is forced to INTEGER.
	assert.Contains(t, sql, "id BIGINT NOT NULL")
	assert.Contains(t, sql, "PRIMARY KEY (id, name)")
}

func TestCreateTableSQL_SchemaQualified(t *testing.T) {
	d, err := New[widget]("widget").
		InSchema("jsl").
		AutoKey("id", func(w *widget) any { return w.ID }).
		Build()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d.CreateTableSQL(), "CREATE TABLE IF NOT EXISTS jsl.widget ("))
}

func TestInsertSQL_ExcludesAutoKey(t *testing.T) {
	d := widgetDescriptor(t)

	assert.Equal(t, "INSERT INTO widget (name, score) VALUES (?, ?)", d.InsertSQL())
}

func TestInsertSQL_KeepsCallerAssignedKeys(t *testing.T) {
	d, err := New[widget]("widget").
		Key("id", Int64, func(w *widget) any { return w.ID }).
		Key("name", String, func(w *widget) any { return w.Name }).
		Column("score", Double, func(w *widget) any { return w.Score }).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO widget (id, name, score) VALUES (?, ?, ?)", d.InsertSQL())
}

func TestUpdateSQL_SingleKey(t *testing.T) {
	d := widgetDescriptor(t)

	assert.Equal(t, "UPDATE widget SET name = ?, score = ? WHERE id = ?", d.UpdateSQL())
}

func TestUpdateSQL_CompositeKeyOrder(t *testing.T) {
	d, err := New[widget]("widget").
		Key("id", Int64, func(w *widget) any { return w.ID }).
		Key("name", String, func(w *widget) any { return w.Name }).
		Column("score", Double, func(w *widget) any { return w.Score }).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE widget SET score = ? WHERE id = ? AND name = ?", d.UpdateSQL())
}

func TestSemanticType_SQLTokens(t *testing.T) {
	tests := []struct {
		typ  SemanticType
		want string
	}{
		{Double, "DOUBLE"},
		{Float32, "REAL"},
		{Int64, "BIGINT"},
		{Int32, "INTEGER"},
		{Int16, "SMALLINT"},
		{Int8, "SMALLINT"},
		{Boolean, "BOOLEAN"},
		{Timestamp, "TIMESTAMP"},
		{String, "VARCHAR(512)"},
		{SemanticType(99), "VARCHAR(512)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.SQLType(), "type %v", tt.typ)
	}
}
