package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gndicom/internal/iotesting"
	"github.com/gnames/gndicom/pkg/album"
	"github.com/gnames/gnfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with a temporary home directory and returns
// its standard output.
func run(t *testing.T, args ...string) (string, error) {
	cmd := getRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func setHome(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestScanNotDICOM(t *testing.T) {
	if testing.Short() {
		t.Skip("touches the file system")
	}
	setHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.Nil(t, os.WriteFile(path, []byte("hello"), 0644))

	out, err := run(t, "scan", dir, "--format", "json")
	require.Nil(t, err)

	var res scanRecord
	enc := gnfmt.GNjson{}
	require.Nil(t, enc.Decode([]byte(out), &res))
	assert.Equal(t, 0, res.Stats.Images)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, path, res.Failures[0].Path)
	assert.Empty(t, res.Series)
}

func TestScanBadRoot(t *testing.T) {
	if testing.Short() {
		t.Skip("touches the file system")
	}
	setHome(t)
	_, err := run(t, "scan", filepath.Join(t.TempDir(), "nope"))
	assert.NotNil(t, err)
}

func TestQueryEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("touches the file system")
	}
	setHome(t)
	dir := t.TempDir()

	for _, kind := range []string{"patients", "studies", "series"} {
		out, err := run(t, "query", kind, dir, "-f", "json")
		require.Nil(t, err, kind)
		assert.Equal(t, "[]", string(bytes.TrimSpace([]byte(out))), kind)
	}

	_, err := run(t, "query", "studies", dir, "--date-from", "15/01/2024")
	assert.NotNil(t, err)
}

func TestAlbumCommands(t *testing.T) {
	if testing.Short() {
		t.Skip("touches the file system")
	}
	setHome(t)
	enc := gnfmt.GNjson{}

	out, err := run(t, "album", "create", "Chest", "-d", "chest series",
		"-f", "json")
	require.Nil(t, err)
	var a album.Album
	require.Nil(t, enc.Decode([]byte(out), &a))
	assert.Equal(t, "Chest", a.Name)
	assert.Equal(t, "system", a.Creator)

	img := filepath.Join(t.TempDir(), "I0001")
	require.Nil(t, os.WriteFile(img, []byte("x"), 0644))

	out, err = run(t, "album", "add", a.ID, img, img+".missing", "-f", "json")
	require.Nil(t, err)
	var res album.Album
	require.Nil(t, enc.Decode([]byte(out), &res))
	assert.Equal(t, []string{img}, res.Images)

	out, err = run(t, "album", "list", "-f", "json")
	require.Nil(t, err)
	var list []album.Album
	require.Nil(t, enc.Decode([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	out, err = run(t, "album", "remove", a.ID, img, "-f", "yaml")
	require.Nil(t, err)
	assert.Contains(t, out, "images: []")

	_, err = run(t, "album", "delete", a.ID)
	require.Nil(t, err)

	_, err = run(t, "album", "show", a.ID)
	assert.NotNil(t, err)
}

func TestAlbumFromQueryEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("touches the file system")
	}
	setHome(t)
	enc := gnfmt.GNjson{}
	dir := t.TempDir()

	out, err := run(t, "album", "from-query", "series", "MR", dir,
		"--modality", "MR", "-f", "json")
	require.Nil(t, err)
	var a album.Album
	require.Nil(t, enc.Decode([]byte(out), &a))
	assert.Equal(t, "MR", a.Name)
	assert.Empty(t, a.Images)

	_, err = run(t, "album", "from-query", "image", "X", dir)
	assert.NotNil(t, err)
}

// writeSeries writes two images of series X and one image of series Y,
// all belonging to one study of patientA.
func writeSeries(t *testing.T, dir string) []string {
	x := iotesting.Image{
		PatientID:         "patientA",
		PatientName:       "Doe^Jane",
		StudyInstanceUID:  "S1",
		StudyDate:         "20240115",
		SeriesInstanceUID: "X",
		Modality:          "CT",
		SeriesNumber:      "1",
	}
	y := x
	y.SeriesInstanceUID = "Y"
	y.SeriesNumber = "0"

	paths := []string{
		filepath.Join(dir, "a.dcm"),
		filepath.Join(dir, "b.dcm"),
		filepath.Join(dir, "c.dcm"),
	}
	iotesting.WriteDICOM(t, paths[0], x)
	iotesting.WriteDICOM(t, paths[1], x)
	iotesting.WriteDICOM(t, paths[2], y)
	return paths
}

func TestScanQueryAlbum(t *testing.T) {
	if testing.Short() {
		t.Skip("touches the file system")
	}
	setHome(t)
	t.Setenv("GNDICOM_ALBUMS_CREATOR", "radiology")
	enc := gnfmt.GNjson{}
	dir := t.TempDir()
	paths := writeSeries(t, dir)

	out, err := run(t, "scan", dir, "-f", "json")
	require.Nil(t, err)
	var res scanRecord
	require.Nil(t, enc.Decode([]byte(out), &res))
	assert.Equal(t, 1, res.Stats.Patients)
	assert.Equal(t, 1, res.Stats.Studies)
	assert.Equal(t, 2, res.Stats.Series)
	assert.Equal(t, 3, res.Stats.Images)
	assert.Equal(t, 0, res.Failed)
	require.Len(t, res.Series, 2)

	out, err = run(t, "query", "series", dir, "--series-number", "0",
		"-f", "json")
	require.Nil(t, err)
	var series []seriesRecord
	require.Nil(t, enc.Decode([]byte(out), &series))
	require.Len(t, series, 1)
	assert.Equal(t, "Y", series[0].UID)
	assert.Equal(t, "S1", series[0].StudyUID)
	assert.Equal(t, "patientA", series[0].PatientID)
	assert.Equal(t, 1, series[0].Images)
	require.NotNil(t, series[0].Number)
	assert.Equal(t, 0, *series[0].Number)

	out, err = run(t, "query", "series", dir, "--series-number", "1",
		"-f", "json")
	require.Nil(t, err)
	series = nil
	require.Nil(t, enc.Decode([]byte(out), &series))
	require.Len(t, series, 1)
	assert.Equal(t, "X", series[0].UID)
	assert.Equal(t, 2, series[0].Images)

	out, err = run(t, "album", "from-query", "series", "MyAlbum", dir,
		"-f", "json")
	require.Nil(t, err)
	var a album.Album
	require.Nil(t, enc.Decode([]byte(out), &a))
	assert.Equal(t, "MyAlbum", a.Name)
	assert.Equal(t, "radiology", a.Creator)
	assert.Equal(t, paths, a.Images)

	out, err = run(t, "album", "show", a.ID, "-f", "json")
	require.Nil(t, err)
	var saved album.Album
	require.Nil(t, enc.Decode([]byte(out), &saved))
	assert.Equal(t, paths, saved.Images)
	assert.Equal(t, "radiology", saved.Creator)
}
