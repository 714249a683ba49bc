package devops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDBEntries(t *testing.T) {
	entries, err := ParseDBEntries(`
- name: Payroll
  host: db.internal
  username: hr
  password: secret
- name: reporting
  host: replica.internal:3307
  username: ro
  password: pw
`)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entry, ok := FindDatabase(entries, "payroll")
	require.True(t, ok)
	assert.Equal(t, "hr:secret@tcp(db.internal:3306)/payroll?parseTime=true", entry.GetDSN("payroll"))

	entry, ok = FindDatabase(entries, "REPORTING")
	require.True(t, ok)
	assert.Equal(t, "ro:pw@tcp(replica.internal:3307)/payroll?parseTime=true", entry.GetDSN("payroll"))

	_, ok = FindDatabase(entries, "missing")
	assert.False(t, ok)
}

func TestParseDBEntriesInvalid(t *testing.T) {
	_, err := ParseDBEntries("name: [")
	assert.Error(t, err)
}
