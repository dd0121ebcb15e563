package output_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltodo/internal/output"
	"ltodo/internal/task"
)

var sample = []task.Task{
	{ID: 1718000000000, Text: "Buy milk"},
	{ID: 1718000000001, Text: "Pay rent, today", Completed: true, DueDate: "2025-02-01T18:30:00.000Z"},
}

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, sample[0], time.UTC)
	output.FormatTask(&buf, 12, sample[1], time.UTC)
	output.FormatTask(&buf, 3, task.Task{ID: 5, Text: "two\nlines"}, time.UTC)

	want := "   1  [ ] Buy milk\n" +
		"  12  [x] Pay rent, today  due 2025-02-01 18:30\n" +
		"   3  [ ] two lines\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Export(&buf, "json", sample, time.UTC))

	got, err := task.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Export(&buf, "CSV", sample, time.UTC))

	want := "id,text,completed,due\n" +
		"1718000000000,Buy milk,false,\n" +
		"1718000000001,\"Pay rent, today\",true,2025-02-01 18:30\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Export(&buf, "pdf", sample, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, output.Export(&buf, "pdf", nil, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := output.Export(&buf, "xml", sample, time.UTC)
	assert.EqualError(t, err, "unknown export format: xml")
	assert.Zero(t, buf.Len())
}
