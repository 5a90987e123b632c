package spark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hollowvale/sparkroll/internal/spark"
)

const natureJSON = `{
  "NATURE": {
    "LĄD": {
      "columns": ["Cecha", "Motyw"],
      "rows": [
        ["stary", "las"], ["mroczny", "strumień"], ["cichy", "wzgórze"],
        ["dziki", "jaskinia"], ["zimny", "bagno"], ["jasny", "polana"],
        ["gęsty", "wąwóz"], ["martwy", "głaz"], ["żywy", "gniazdo"],
        ["ukryty", "źródło"], ["pradawny", "kopiec"], ["zarośnięty", "ścieżka"]
      ]
    },
    "MORZE": {
      "columns": ["Cecha", "Motyw"],
      "rows": [
        ["wzburzone", "fala"], ["spokojne", "rafa"], ["głębokie", "wrak"],
        ["mętne", "prąd"], ["lodowate", "góra"], ["słone", "wodorost"],
        ["ciemne", "rów"], ["fosforyzujące", "ławica"], ["gwałtowne", "sztorm"],
        ["płytkie", "mielizna"], ["bezkresne", "horyzont"], ["niespokojne", "wir"]
      ]
    }
  },
  "DRAMA": {
    "SCENA": {
      "columns": ["Nastrój", "Zwrot"],
      "rows": [
        ["napięcie", "zdrada"], ["ulga", "spotkanie"], ["groza", "ucieczka"],
        ["nadzieja", "odkrycie"], ["żal", "strata"], ["gniew", "pojedynek"],
        ["spokój", "rozejm"], ["lęk", "pościg"], ["radość", "powrót"],
        ["wstyd", "sekret"], ["duma", "wyzwanie"], ["tęsknota", "list"]
      ]
    }
  }
}`

func TestParseJSON_SheetsAndTablesInFileOrder(t *testing.T) {
	store, err := spark.Load([]byte(natureJSON), spark.FormatJSON, zaptest.NewLogger(t))
	require.NoError(t, err)

	sheets := store.Sheets()
	require.Len(t, sheets, 2)
	assert.Equal(t, "NATURE", sheets[0].Name)
	assert.Equal(t, "DRAMA", sheets[1].Name)
	assert.Equal(t, "LĄD", sheets[0].Tables[0].Name)
	assert.Equal(t, "MORZE", sheets[0].Tables[1].Name)

	m, err := store.Find("LĄD", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cecha", "Motyw"}, m.Table.Columns)
	assert.Len(t, m.Table.Rows, 12)
}

func TestParseJSON_InvalidDocument(t *testing.T) {
	for _, input := range []string{"", "not json", `["array"]`, `{"SHEET": "not a mapping"}`} {
		_, err := spark.Load([]byte(input), spark.FormatJSON, zap.NewNop())
		assert.ErrorIs(t, err, spark.ErrMalformedSource, "input %q", input)
	}
}

// The document must end at the closing brace; anything after it is malformed.
func TestParseJSON_TrailingContentRejected(t *testing.T) {
	input := `{"S": {"T": {"columns": ["A", "B"], "rows": [["a", "b"]]}}} garbage`
	_, err := spark.Load([]byte(input), spark.FormatJSON, zap.NewNop())
	assert.ErrorIs(t, err, spark.ErrMalformedSource)
}

func TestParseJSON_MismatchedRowsDropped(t *testing.T) {
	input := `{
  "S": {
    "T": {
      "columns": ["A", "B"],
      "rows": [["a", "b"], ["only-one"], ["x", "y", "z"], ["c", "d"]]
    }
  }
}`
	core, logs := observer.New(zap.WarnLevel)
	store, err := spark.Load([]byte(input), spark.FormatJSON, zap.New(core))
	require.NoError(t, err)

	m, err := store.Find("T", nil)
	require.NoError(t, err)
	require.Len(t, m.Table.Rows, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, m.Table.Rows)
	assert.Equal(t, 2, logs.FilterMessageSnippet("dropping row").Len())
}

// One broken table must not take down its siblings.
func TestParseJSON_BrokenTableSkipped(t *testing.T) {
	input := `{
  "S": {
    "BROKEN": {"columns": "not-a-list", "rows": []},
    "OK": {"columns": ["A", "B"], "rows": [["a", "b"]]}
  }
}`
	store, err := spark.Load([]byte(input), spark.FormatJSON, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	_, err = store.Find("BROKEN", nil)
	assert.ErrorIs(t, err, spark.ErrNotFound)
}

func TestParseJSON_AllRowsDroppedMeansNoTable(t *testing.T) {
	input := `{"S": {"T": {"columns": ["A", "B"], "rows": [["lonely"]]}}}`
	_, err := spark.Load([]byte(input), spark.FormatJSON, zap.NewNop())
	assert.ErrorIs(t, err, spark.ErrMalformedSource)
}
