package pipeline

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dbc/internal/classfile"
	"dbc/internal/classfile/classfiletest"
	"dbc/internal/config"
	"dbc/internal/dataset"
	"dbc/internal/domain"
	"dbc/internal/loader"
	"dbc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const header = "Test Id,Method Id,Method Role,Method Modifiers,Methods Header,Fully Qualified Name,Start Line,End Line\n"

type fixture struct {
	cfg *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := config.New()
	cfg.DataDir = filepath.Join(root, "data")
	cfg.SubjectsDir = filepath.Join(root, "subjects")
	cfg.OutDir = filepath.Join(root, "out")
	cfg.SummaryDir = filepath.Join(root, "storage")
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0755))
	return &fixture{cfg: cfg}
}

func (f *fixture) tables(t *testing.T, subject, routes, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(f.cfg.GetRoutesPath(subject), []byte("Test Id;Method Id;Method Role\n"+routes), 0644))
	require.NoError(t, os.WriteFile(f.cfg.GetDataPath(subject), []byte("Method Id,Header,Fully Qualified Name,Start Line,End Line\n"+data), 0644))
}

func (f *fixture) class(t *testing.T, subject string, b *classfiletest.Builder) string {
	t.Helper()
	path, err := b.WriteFile(f.cfg.SubjectsDir, subject)
	require.NoError(t, err)
	return path
}

func (f *fixture) output(t *testing.T, subject string) string {
	t.Helper()
	data, err := os.ReadFile(f.cfg.GetOutputPath(subject))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(data), "\r\n"), "records end with CRLF")
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}

func (f *fixture) pipeline() *Pipeline {
	return New(f.cfg, storage.NewJSONStorage(f.cfg), zap.NewNop())
}

func TestPipeline_ResolvedModifiers(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson", "T1;M1;assertion\n", "M1,hdr,a.b.C.m()I,10,12\n")
	f.class(t, "Gson", classfiletest.New("a/b/C").Method(classfile.AccPublic|classfile.AccStatic, "m", "()I"))

	summary, err := f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)

	assert.Equal(t, header+"T1,M1,assertion,public static,hdr,a.b.C.m()I,10,12\n", f.output(t, "Gson"))
	require.Len(t, summary.Subjects, 1)
	assert.Equal(t, 1, summary.Meta.TotalRows)
	assert.Equal(t, 0, summary.Meta.TotalUnresolved)
	assert.Equal(t, "multi", summary.Meta.Cardinality)
}

type countingSource struct {
	classes map[string][]byte
	opens   map[string]int
}

func (s *countingSource) Open(subject, classPath string) (io.ReadCloser, error) {
	key := subject + "/" + classPath
	s.opens[key]++
	data, ok := s.classes[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestPipeline_ClassSource(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson", "T1;M1;assertion\nT1;M2;helper\nT2;M1;assertion\n",
		"M1,h1,a.b.C.m()I,1,2\nM2,h2,a.b.C.n()V,3,4\n")
	f.tables(t, "JFreeChart", "T1;M1;assertion\n", "M1,h1,a.b.C.m()I,1,2\n")

	source := &countingSource{
		classes: map[string][]byte{
			"Gson/a/b/C": classfiletest.New("a/b/C").
				Method(classfile.AccPublic, "m", "()I").
				Method(classfile.AccProtected, "n", "()V").
				Bytes(),
		},
		opens: make(map[string]int),
	}
	p := f.pipeline()
	p.SetSource(source)

	summary, err := p.Run([]string{"Gson", "JFreeChart"})
	require.NoError(t, err)

	assert.Equal(t, header+
		"T1,M1,assertion,public,h1,a.b.C.m()I,1,2\n"+
		"T1,M2,helper,protected,h2,a.b.C.n()V,3,4\n"+
		"T2,M1,assertion,public,h1,a.b.C.m()I,1,2\n", f.output(t, "Gson"))
	assert.Equal(t, header+"T1,M1,assertion,N/A,h1,a.b.C.m()I,1,2\n", f.output(t, "JFreeChart"))

	// one read per class and subject
	assert.Equal(t, map[string]int{"Gson/a/b/C": 1, "JFreeChart/a/b/C": 1}, source.opens)
	assert.Equal(t, 1, summary.Meta.TotalUnresolved)
}

func TestPipeline_MissingClass(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson", "T1;M1;assertion\n", "M1,hdr,a.b.C.m()I,10,12\n")

	summary, err := f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)

	assert.Equal(t, header+"T1,M1,assertion,N/A,hdr,a.b.C.m()I,10,12\n", f.output(t, "Gson"))
	assert.Equal(t, 1, summary.Subjects[0].Unresolved)
}

func TestPipeline_CorruptClassAffectsOnlyItsRows(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson",
		"T1;M1;assertion\nT2;M2;helper\n",
		"M1,h1,a.b.C.m()I,10,12\nM2,h2,a.b.D.n()V,3,4\n")
	f.class(t, "Gson", classfiletest.New("a/b/C").Method(classfile.AccPublic, "m", "()I"))
	corrupt := f.class(t, "Gson", classfiletest.New("a/b/D").Method(classfile.AccPrivate|classfile.AccFinal, "n", "()V"))

	_, err := f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)
	assert.Equal(t, header+
		"T1,M1,assertion,public,h1,a.b.C.m()I,10,12\n"+
		"T2,M2,helper,private final,h2,a.b.D.n()V,3,4\n", f.output(t, "Gson"))

	require.NoError(t, os.WriteFile(corrupt, []byte{0xCA, 0xFE}, 0644))

	_, err = f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)
	assert.Equal(t, header+
		"T1,M1,assertion,public,h1,a.b.C.m()I,10,12\n"+
		"T2,M2,helper,N/A,h2,a.b.D.n()V,3,4\n", f.output(t, "Gson"))
}

func TestPipeline_Deterministic(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson",
		"T3;M1;helper\nT1;M2;assertion\nT2;M1;assertion\nT1;M1;helper\n",
		"M1,h1,a.C.m()V,1,2\nM2,h2,a.C.n()V,3,4\nM1,h1b,a.D.m()V,5,6\n")
	f.class(t, "Gson", classfiletest.New("a/C").Method(classfile.AccPublic, "m", "()V").Method(0, "n", "()V"))

	_, err := f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)
	first := f.output(t, "Gson")

	_, err = f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)
	assert.Equal(t, first, f.output(t, "Gson"))

	assert.Equal(t, header+
		"T1,M2,assertion,,h2,a.C.n()V,3,4\n"+
		"T1,M1,helper,public,h1,a.C.m()V,1,2\n"+
		"T1,M1,helper,N/A,h1b,a.D.m()V,5,6\n"+
		"T2,M1,assertion,public,h1,a.C.m()V,1,2\n"+
		"T2,M1,assertion,N/A,h1b,a.D.m()V,5,6\n"+
		"T3,M1,helper,public,h1,a.C.m()V,1,2\n"+
		"T3,M1,helper,N/A,h1b,a.D.m()V,5,6\n", first)
}

func TestPipeline_SingleCardinality(t *testing.T) {
	f := newFixture(t)
	f.cfg.Cardinality = "single"
	f.tables(t, "Gson",
		"T1;M1;helper\nT1;M2;assertion\n",
		"M1,h1,a.C.m()V,1,2\nM2,h2,a.C.n()V,3,4\nM2,h2b,a.C.n()V,7,8\n")

	summary, err := f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)

	assert.Equal(t, header+"T1,M2,assertion,N/A,h2b,a.C.n()V,7,8\n", f.output(t, "Gson"))
	assert.Equal(t, "single", summary.Meta.Cardinality)
}

func TestPipeline_OrphanRoute(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "CommonsLang", "T1;M1;assertion\n", "M1,hdr,a.C.m()V,1,2\n")
	f.tables(t, "Gson", "T1;M1;assertion\nT2;M404;helper\n", "M1,hdr,a.C.m()V,1,2\n")
	f.tables(t, "JFreeChart", "T1;M1;assertion\n", "M1,hdr,a.C.m()V,1,2\n")

	summary, err := f.pipeline().Run([]string{"CommonsLang", "Gson", "JFreeChart"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrOrphanRoute)

	// earlier subjects keep their output; the failing and later ones get none
	assert.Contains(t, f.output(t, "CommonsLang"), "T1,M1")
	assert.NoFileExists(t, f.cfg.GetOutputPath("Gson"))
	assert.NoFileExists(t, f.cfg.GetOutputPath("JFreeChart"))
	require.Len(t, summary.Subjects, 1)

	_, err = storage.NewJSONStorage(f.cfg).Load()
	assert.Error(t, err, "summary is not saved for a failed run")
}

func TestPipeline_MissingTables(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline().Run([]string{"Gson"})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPipeline_MalformedRoutes(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson", "T1,M1,assertion\n", "M1,hdr,a.C.m()V,1,2\n")

	_, err := f.pipeline().Run([]string{"Gson"})
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrMalformedTable)
	assert.NoFileExists(t, f.cfg.GetOutputPath("Gson"))
}

func TestPipeline_RecreatesOutputDir(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson", "T1;M1;assertion\n", "M1,hdr,a.C.m()V,1,2\n")
	stale := filepath.Join(f.cfg.OutDir, "Stale.csv")
	require.NoError(t, os.MkdirAll(f.cfg.OutDir, 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	_, err := f.pipeline().Run([]string{"Gson"})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, f.cfg.GetOutputPath("Gson"))
}

func TestPipeline_UnknownCardinality(t *testing.T) {
	f := newFixture(t)
	f.cfg.Cardinality = "many"

	_, err := f.pipeline().Run([]string{"Gson"})
	assert.Error(t, err)
}

func TestPrepareOutputDir_Failure(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))

	err := PrepareOutputDir(filepath.Join(parent, "out"))
	assert.ErrorIs(t, err, ErrOutputDir)
}

type recordingProgress struct {
	total    int
	updates  []int
	finished bool
}

func (r *recordingProgress) Update(done int) {
	r.updates = append(r.updates, done)
}

func (r *recordingProgress) Finish() {
	r.finished = true
}

type recordingExporter struct {
	subjects []string
	rows     int
	err      error
}

func (r *recordingExporter) Export(subject string, records []domain.OutputRecord) error {
	r.subjects = append(r.subjects, subject)
	r.rows += len(records)
	return r.err
}

func TestPipeline_ProgressAndExporter(t *testing.T) {
	f := newFixture(t)
	f.tables(t, "Gson", "T1;M1;assertion\nT2;M1;helper\n", "M1,hdr,a.C.m()V,1,2\n")

	progress := map[string]*recordingProgress{}
	exporter := &recordingExporter{}
	p := f.pipeline()
	p.SetProgress(func(subject string, total int) Progress {
		progress[subject] = &recordingProgress{total: total}
		return progress[subject]
	})
	p.SetExporter(exporter)

	_, err := p.Run([]string{"Gson"})
	require.NoError(t, err)

	require.Contains(t, progress, "Gson")
	assert.Equal(t, 2, progress["Gson"].total)
	assert.Equal(t, []int{1, 2}, progress["Gson"].updates)
	assert.True(t, progress["Gson"].finished)
	assert.Equal(t, []string{"Gson"}, exporter.subjects)
	assert.Equal(t, 2, exporter.rows)

	exporter.err = errors.New("connection refused")
	_, err = p.Run([]string{"Gson"})
	assert.ErrorContains(t, err, "connection refused")
}
