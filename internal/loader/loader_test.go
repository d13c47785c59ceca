package loader

import (
	"os"
	"path/filepath"
	"testing"

	"dbc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const routesCSV = `Test Id;Method Id;Method Role
T2;M1;helper
T1;M1;assertion
T1;M2;helper
T1;M1;assertion
T1;M3;"tested; indirectly"
`

func TestLoadRoutes_Multi(t *testing.T) {
	path := writeTable(t, "Gson_routes.csv", routesCSV)

	index, err := LoadRoutes(path, domain.CardinalityMulti)
	require.NoError(t, err)

	assert.Equal(t, []string{"T1", "T2"}, index.TestIDs())
	assert.Equal(t, []domain.RouteEntry{
		{TestID: "T1", MethodID: "M1", MethodRole: "assertion"},
		{TestID: "T1", MethodID: "M2", MethodRole: "helper"},
		{TestID: "T1", MethodID: "M3", MethodRole: "tested; indirectly"},
	}, index.Routes("T1"))
	assert.Equal(t, 4, index.Len())
}

func TestLoadRoutes_Single(t *testing.T) {
	path := writeTable(t, "Gson_routes.csv", routesCSV)

	index, err := LoadRoutes(path, domain.CardinalitySingle)
	require.NoError(t, err)

	assert.Equal(t, []domain.RouteEntry{
		{TestID: "T1", MethodID: "M3", MethodRole: "tested; indirectly"},
	}, index.Routes("T1"))
	assert.Equal(t, 2, index.Len())
}

const methodsCSV = `Method Id,Header,Fully Qualified Name,Start Line,End Line
M1,hdr,a.b.C.m()I,10,12
M2,"public void run(int a, int b)",a.b.C.run(II)V,20,30
M1,hdr2,a.b.D.m()I,5,7
M1,hdr,a.b.C.m()I,10,12
`

func TestLoadMethods(t *testing.T) {
	path := writeTable(t, "Gson_data.csv", methodsCSV)

	t.Run("multi keeps distinct records", func(t *testing.T) {
		index, err := LoadMethods(path, domain.CardinalityMulti)
		require.NoError(t, err)

		records, ok := index.Lookup("M1")
		require.True(t, ok)
		assert.Equal(t, []domain.MethodRecord{
			{MethodID: "M1", Header: "hdr", FullyQualifiedName: "a.b.C.m()I", StartLine: "10", EndLine: "12"},
			{MethodID: "M1", Header: "hdr2", FullyQualifiedName: "a.b.D.m()I", StartLine: "5", EndLine: "7"},
		}, records)

		records, ok = index.Lookup("M2")
		require.True(t, ok)
		assert.Equal(t, "public void run(int a, int b)", records[0].Header)

		_, ok = index.Lookup("M9")
		assert.False(t, ok)
		assert.Equal(t, 2, index.Len())
	})

	t.Run("single keeps last record", func(t *testing.T) {
		index, err := LoadMethods(path, domain.CardinalitySingle)
		require.NoError(t, err)

		records, ok := index.Lookup("M1")
		require.True(t, ok)
		require.Len(t, records, 1)
		assert.Equal(t, "a.b.C.m()I", records[0].FullyQualifiedName)
		assert.Equal(t, "hdr", records[0].Header)
	})
}

func TestLoadMethods_QuoteInsideHeader(t *testing.T) {
	path := writeTable(t, "data.csv", "Method Id,Header,Fully Qualified Name,Start Line,End Line\n"+
		"M1,@SuppressWarnings(\"x\") void m(),a.b.C.m()V,1,2\n"+
		"M2,\"@Test(expected = \"\"a,b\"\") void n()\",a.b.C.n()V,3,4\n")

	index, err := LoadMethods(path, domain.CardinalityMulti)
	require.NoError(t, err)

	records, ok := index.Lookup("M1")
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, `@SuppressWarnings("x") void m()`, records[0].Header)
	assert.Equal(t, "a.b.C.m()V", records[0].FullyQualifiedName)

	records, ok = index.Lookup("M2")
	require.True(t, ok)
	assert.Equal(t, `@Test(expected = "a,b") void n()`, records[0].Header)
}

func TestLoad_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRoutes(filepath.Join(t.TempDir(), "nope.csv"), domain.CardinalityMulti)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty file has no header", func(t *testing.T) {
		path := writeTable(t, "empty.csv", "")
		_, err := LoadMethods(path, domain.CardinalityMulti)
		assert.ErrorIs(t, err, ErrMalformedTable)
	})

	t.Run("short row", func(t *testing.T) {
		path := writeTable(t, "short.csv", "a;b;c\nT1;M1\n")
		_, err := LoadRoutes(path, domain.CardinalityMulti)
		assert.ErrorIs(t, err, ErrMalformedTable)
	})

	t.Run("routes read with the wrong delimiter", func(t *testing.T) {
		path := writeTable(t, "data.csv", "Method Id,Header,Fully Qualified Name,Start Line,End Line\nM1;hdr;a.b.C.m()I;10;12\n")
		_, err := LoadMethods(path, domain.CardinalityMulti)
		assert.ErrorIs(t, err, ErrMalformedTable)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		path := writeTable(t, "quote.csv", "a;b;c\nT1;\"M1;x\n")
		_, err := LoadRoutes(path, domain.CardinalityMulti)
		assert.ErrorIs(t, err, ErrMalformedTable)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeTable(t, "header.csv", "a;b;c\n")
		index, err := LoadRoutes(path, domain.CardinalityMulti)
		require.NoError(t, err)
		assert.Empty(t, index.TestIDs())
	})
}
