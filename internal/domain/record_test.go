package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_MarshalJSON_KeepsColumnOrder(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"name", "revenue", "expenses"},
		Records: []Record{
			{"name": "Acme", "revenue": "1000", "expenses": "400"},
			{"name": "Globex", "revenue": "2000", "expenses": "900"},
		},
	}

	out, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"name":"Acme","revenue":"1000","expenses":"400"},{"name":"Globex","revenue":"2000","expenses":"900"}]`,
		string(out),
	)
}

func TestDataset_MarshalJSON_Empty(t *testing.T) {
	out, err := json.Marshal(NewDataset([]string{"name"}))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	var nilDS *Dataset
	out, err = json.Marshal(nilDS)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDataset_MarshalIndent(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"name", "revenue"},
		Records: []Record{{"name": "Acme", "revenue": "1000"}},
	}

	out, err := json.MarshalIndent(ds, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"Acme\",\n    \"revenue\": \"1000\"\n  }\n]", string(out))
}

func TestDataset_UnmarshalJSON(t *testing.T) {
	var ds Dataset
	err := json.Unmarshal([]byte(`[{"region":"EU","profit":12.5,"active":true,"note":null},{"profit":"3","region":"US"}]`), &ds)
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "profit", "active", "note"}, ds.Columns)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, Record{"region": "EU", "profit": "12.5", "active": "true", "note": ""}, ds.Records[0])
	assert.Equal(t, Record{"region": "US", "profit": "3"}, ds.Records[1])
}

func TestDataset_UnmarshalJSON_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "object instead of array", input: `{"name":"Acme"}`},
		{name: "array of scalars", input: `["Acme"]`},
		{name: "nested value", input: `[{"name":{"first":"Acme"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ds Dataset
			assert.Error(t, json.Unmarshal([]byte(tt.input), &ds))
		})
	}
}
