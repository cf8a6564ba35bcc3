package cli

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"geoproj/internal/proj"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func floats(t *testing.T, s string) []float64 {
	t.Helper()
	var out []float64
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseFloat(f, 64)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestForwardInverse(t *testing.T) {
	out, err := run(t, "forward", "0", "0")
	require.NoError(t, err)
	require.Equal(t, "0.500000 0.500000\n", out)

	out, err = run(t, "inverse", "0.75", "0.5")
	require.NoError(t, err)
	v := floats(t, out)
	require.InDelta(t, 90, v[0], 0.01)
	require.InDelta(t, 0, v[1], 1e-6)

	out, err = run(t, "forward", "--projection", "3d", "--reference_height", "2", "90", "0")
	require.NoError(t, err)
	v = floats(t, out)
	require.InDelta(t, 0, v[0], 1e-6)
	require.InDelta(t, 2, v[1], 1e-6)

	_, err = run(t, "inverse", "--projection", "3d", "0.5", "0.5")
	require.Equal(t, proj.ErrNotPlanar, errors.Cause(err))

	_, err = run(t, "inverse", "1.5", "0.5")
	require.Equal(t, proj.ErrUnmappable, errors.Cause(err))

	_, err = run(t, "forward", "east", "0")
	require.Error(t, err)
}

func TestEnvironmentAndConfigFile(t *testing.T) {
	t.Setenv("GEOPROJ_CENTER_LON", "90")
	out, err := run(t, "forward", "90", "0")
	require.NoError(t, err)
	require.Equal(t, "0.500000 0.500000\n", out)

	// flags win over the environment
	out, err = run(t, "forward", "--center_lon", "0", "90", "0")
	require.NoError(t, err)
	require.Equal(t, 0.75, floats(t, out)[0])

	cfg := filepath.Join(t.TempDir(), "geoproj.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("projection: bogus\n"), 0o644))
	_, err = run(t, "forward", "--config", cfg, "0", "0")
	require.Equal(t, proj.ErrUnknownKind, errors.Cause(err))
}

func TestFilterConfig(t *testing.T) {
	conf := viper.New()
	conf.Set(flagProjection, "robin")
	conf.Set(flagCenterLon, 10.0)
	conf.Set(flagRefHeight, 1.5)
	conf.Set(flagInterpolation, 0.01)
	conf.Set(flagIgnoreDist, 5.0)
	conf.Set(flagEps, 1e-6)
	cfg, err := filterConfig(conf)
	require.NoError(t, err)
	require.Equal(t, proj.Robinson, cfg.Projection)
	require.Equal(t, 10.0, cfg.CenterLongitude)
	require.Equal(t, 1.5, cfg.ReferenceHeight)

	conf.Set(flagCenterLat, 120.0)
	_, err = filterConfig(conf)
	require.Equal(t, proj.ErrInvalidCenter, errors.Cause(err))
}

func TestProject(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "box.wkt")
	require.NoError(t, os.WriteFile(in, []byte("POLYGON((170 10, -170 10, -170 -10, 170 -10, 170 10))"), 0o644))
	outPath := filepath.Join(dir, "box.geojson")
	logPath := filepath.Join(dir, "log.json")

	_, err := run(t, "project", "--in", in, "--out", outPath, "--projection", "cea",
		"--log_file", logPath, "--log_level", "debug")
	require.NoError(t, err)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	for _, f := range fc.Features {
		require.True(t, f.Geometry.IsPolygon())
		for _, c := range f.Geometry.Polygon[0] {
			require.True(t, c[0] >= 0 && c[0] <= 1)
			require.True(t, c[1] >= 0 && c[1] <= 1)
		}
	}

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(logs), `"msg":"projected mesh"`)

	_, err = run(t, "project", "--out", outPath)
	require.Error(t, err)
	_, err = run(t, "project", "--in", filepath.Join(dir, "none.shp"))
	require.Error(t, err)
}

func TestLoggerFileIsFlushedAndClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	conf := viper.New()
	conf.Set(flagLogLevel, "info")
	conf.Set(flagLogFile, path)

	for _, msg := range []string{"first run", "second run"} {
		log, done, err := newLogger(conf, true)
		require.NoError(t, err)
		log.Info(msg)
		done()
	}
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"msg":"first run"`)
	require.Contains(t, lines[1], `"msg":"second run"`)

	conf.Set(flagLogFile, "")
	log, done, err := newLogger(conf, true)
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.ErrorLevel))
	done()

	conf.Set(flagLogLevel, "loud")
	_, _, err = newLogger(conf, false)
	require.Error(t, err)
}

func TestGraticule(t *testing.T) {
	out, err := run(t, "graticule", "--raw", "--spacing", "90", "--step", "45")
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	// 4 meridians and 3 parallels
	require.Len(t, fc.Features, 7)
	require.Equal(t, []float64{-180, -90}, fc.Features[0].Geometry.LineString[0])

	out, err = run(t, "graticule", "--projection", "moll", "--spacing", "90", "--step", "45", "--poles=false")
	require.NoError(t, err)
	fc, err = geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.NotEmpty(t, fc.Features)

	_, err = run(t, "graticule", "--spacing", "0")
	require.Error(t, err)
}

func TestProjectTrack(t *testing.T) {
	in := filepath.Join(t.TempDir(), "track.csv")
	require.NoError(t, os.WriteFile(in, []byte("lat,lon\n0,170\n0,-170\n10,-160\n"), 0o644))

	out, err := run(t, "project", "--in", in, "--track", "--interpolation_distance", "0")
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	var points, lines int
	for _, f := range fc.Features {
		switch {
		case f.Geometry.IsPoint():
			points++
		case f.Geometry.IsLineString():
			lines++
		}
	}
	require.Equal(t, 3, points)
	// the first segment crosses the cut meridian and is split in two
	require.Equal(t, 3, lines)
}

func TestProjectSwathsAndGrid(t *testing.T) {
	dir := t.TempDir()
	swaths := filepath.Join(dir, "swaths.csv")
	require.NoError(t, os.WriteFile(swaths, []byte(
		"lon0,lon1,lon2,lon3,lat0,lat1,lat2,lat3,value\n"+
			"179,-179,-179,179,-1,-1,1,1,3.5\n"), 0o644))

	out, err := run(t, "project", "--swaths", swaths)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	for _, f := range fc.Features {
		require.True(t, f.Geometry.IsPolygon())
		require.Equal(t, 3.5, f.Properties["value"])
	}

	grid := filepath.Join(dir, "grid.csv")
	require.NoError(t, os.WriteFile(grid, []byte("lon,lat,value\n0,0,1\n10,0,2\n0,10,3\n10,10,4\n"), 0o644))
	out, err = run(t, "project", "--grid", grid, "--projection", "3d",
		"--reference_height", "1", "--height_factor", "0.5")
	require.NoError(t, err)
	fc, err = geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)
	highest := 0.0
	for _, f := range fc.Features {
		for _, c := range f.Geometry.Polygon[0] {
			r := math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
			require.GreaterOrEqual(t, r, 1-1e-9)
			highest = math.Max(highest, r)
		}
	}
	require.InDelta(t, 1.5, highest, 1e-6)

	_, err = run(t, "project", "--out", "-")
	require.Error(t, err)
}
