package transfer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
)

func TestEncodeDecode(t *testing.T) {
	snap := domain.Snapshot{
		Programs: domain.DefaultPrograms(),
		Editors:  domain.DefaultEditors(),
		Tasks: []*domain.Task{{
			ID: "t1", Show: "Correspondents", Episode: "12", Editor: "James",
			StartDate: "2024-05-01", EndDate: "2024-05-03", LastEditedAt: "2024-04-30T10:00:00Z",
			Note: "needs color grade", Version: 2,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromSnapshot(snap, "2024-05-01T00:00:00Z")))

	out := buf.String()
	assert.Contains(t, out, "version: 1")

	doc, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap.Tasks, doc.Tasks)
	assert.Equal(t, snap.Editors, doc.Editors)
	assert.Equal(t, snap.Programs, doc.Programs)
	assert.Equal(t, "2024-05-01T00:00:00Z", doc.ExportedAt)
}

func TestDecode_HandWritten(t *testing.T) {
	in := `
editors:
  - name: Mia
    color: bg-violet-100 text-violet-700
tasks:
  - show: DC Insiders
    episode: "7"
    editor: Mia
    startDate: "2024-06-03"
    endDate: "2024-06-04"
`
	doc, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, doc.Version)
	require.Len(t, doc.Editors, 1)
	assert.Equal(t, "Mia", doc.Editors[0].Name)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "7", doc.Tasks[0].Episode)
	assert.Empty(t, doc.Programs)
}

func TestDecode_Empty(t *testing.T) {
	doc, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Tasks)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("tasks:\n  - show: x\n    editr: typo\n"))
	assert.Error(t, err)
}

func TestDecode_NewerVersion(t *testing.T) {
	_, err := Decode(strings.NewReader("version: 9\n"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
