package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habits/internal/habit"
	"github.com/roach88/habits/internal/habitfile"
	"github.com/roach88/habits/internal/testutil"
)

// seedHabits adds three habits with completions used by several tests.
func seedHabits(env *cliEnv) {
	env.t.Helper()
	env.mustRun("add", "Exercise", "--frequency", "daily", "--start", "2024-06-01")
	for _, d := range []string{"2024-06-03", "2024-06-10", "2024-06-11", "2024-06-12"} {
		env.mustRun("done", "Exercise", "--date", d)
	}

	env.mustRun("add", "Plan the week", "-f", "weekly", "--start", "2024-05-27")
	env.mustRun("done", "Plan the week", "--date", "2024-05-28")
	env.mustRun("done", "Plan the week", "--date", "2024-06-04")

	env.mustRun("add", "--preset", "5", "--start", "2024-06-01")
}

func TestAdd(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("add", "Exercise", "--frequency", "Daily", "--start", "2024-06-01")
	assert.Equal(t, "Added daily habit \"Exercise\" starting 2024-06-01.\n", out)

	out = env.mustRun("add", "  Read  ", "-f", "weekly")
	assert.Equal(t, "Added weekly habit \"Read\" starting 2024-06-12.\n", out, "start defaults to today")
}

func TestAdd_Preset(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("add", "--preset", "3")
	assert.Equal(t, "Added weekly habit \"Plan the week\" starting 2024-06-12.\n", out)
}

func TestAdd_Duplicate(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")

	res := env.run("add", "exercise ", "-f", "weekly")
	require.NoError(t, res.Err, "names are case sensitive")

	res = env.run("add", " Exercise", "-f", "weekly")
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "already exists")
}

func TestAdd_Validation(t *testing.T) {
	env := newCLIEnv(t)

	tests := map[string][]string{
		"no name":             {"add", "--frequency", "daily"},
		"no frequency":        {"add", "Read"},
		"bad frequency":       {"add", "Read", "--frequency", "hourly"},
		"bad start":           {"add", "Read", "-f", "daily", "--start", "tomorrow"},
		"preset out of range": {"add", "--preset", "9"},
		"preset and name":     {"add", "Read", "--preset", "1"},
		"blank name":          {"add", "   ", "-f", "daily"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res := env.run(args...)
			assert.Equal(t, ExitCommandError, GetExitCode(res.Err))
			assert.Contains(t, res.Stderr, "Error [E006]")
		})
	}
}

func TestList(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "No habits tracked.\n", env.mustRun("list"))

	seedHabits(env)

	assert.Equal(t,
		"1. Exercise (daily, since 2024-06-01)\n"+
			"2. Plan the week (weekly, since 2024-05-27)\n"+
			"3. Paying the bills (monthly, since 2024-06-01)\n",
		env.mustRun("list"))

	assert.Equal(t, "1. Plan the week (weekly, since 2024-05-27)\n",
		env.mustRun("list", "--frequency", "weekly"))
}

func TestList_JSON(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily", "--start", "2024-06-01")

	out := env.mustRun("list", "--format", "json")

	var resp struct {
		Status string      `json:"status"`
		Data   []habitView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []habitView{{Name: "Exercise", Frequency: "daily", StartDate: "2024-06-01"}}, resp.Data)
}

func TestDone(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")

	assert.Equal(t, "Marked \"Exercise\" done on 2024-06-12.\n", env.mustRun("done", "Exercise"))
	assert.Equal(t, "Marked \"Exercise\" done on 2024-06-10.\n", env.mustRun("done", "Exercise", "--date", "2024-06-10"))

	// Same date again is accepted and changes nothing.
	env.mustRun("done", "Exercise")

	out := env.mustRun("longest", "Exercise")
	assert.Equal(t, "Longest streak of \"Exercise\": 1 day.\n", out)
}

func TestDone_UnknownHabit(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("done", "Nope")
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "Error [E004]")
	assert.Contains(t, res.Stderr, `habit "Nope" not found`)
}

func TestDone_InvalidDate(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")

	res := env.run("done", "Exercise", "--date", "2024-13-01")
	assert.Equal(t, ExitCommandError, GetExitCode(res.Err))
}

func TestRemove(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")
	env.mustRun("add", "Chores", "-f", "daily")

	res := env.runWithInput("n\n", "remove", "Exercise")
	require.NoError(t, res.Err)
	assert.Equal(t, "Cancelled.\n", res.Stdout)
	assert.Contains(t, res.Stderr, "[y/n]")

	res = env.runWithInput("maybe\nyes\n", "remove", "Exercise")
	require.NoError(t, res.Err)
	assert.Equal(t, "Removed habit \"Exercise\".\n", res.Stdout)
	assert.Contains(t, res.Stderr, "Please answer y or n.")

	assert.Equal(t, "Removed habit \"Chores\".\n", env.mustRun("remove", "Chores", "--yes"))
	assert.Equal(t, "No habits tracked.\n", env.mustRun("list"))
}

func TestRemove_EndOfInputCancels(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")

	res := env.runWithInput("", "remove", "Exercise")
	require.NoError(t, res.Err)
	assert.Equal(t, "Cancelled.\n", res.Stdout)
}

func TestRemove_UnknownHabit(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("remove", "Nope", "-y")
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "not found")
}

func TestStats_Golden(t *testing.T) {
	env := newCLIEnv(t)
	seedHabits(env)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  recent_completions: 3\n"), 0644))

	out := env.mustRun("stats", "--config", cfgPath)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "stats_overview", []byte(out))
}

func TestStats_Empty(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "No habits to show statistics for.\n", env.mustRun("stats"))
}

func TestStats_JSON(t *testing.T) {
	env := newCLIEnv(t)
	seedHabits(env)

	out := env.mustRun("stats", "--format", "json")

	var resp struct {
		Data []struct {
			Name           string   `json:"name"`
			Frequency      string   `json:"frequency"`
			CurrentStreak  int      `json:"current_streak"`
			LongestStreak  int      `json:"longest_streak"`
			Missed         int      `json:"missed"`
			CompletedDates []string `json:"completed_dates"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 3)

	ex := resp.Data[0]
	assert.Equal(t, "Exercise", ex.Name)
	assert.Equal(t, 3, ex.CurrentStreak)
	assert.Equal(t, 3, ex.LongestStreak)
	assert.Equal(t, 8, ex.Missed)
	assert.Equal(t, []string{"2024-06-12", "2024-06-11", "2024-06-10", "2024-06-03"}, ex.CompletedDates,
		"JSON lists every completion newest first")

	assert.Equal(t, "weekly", resp.Data[1].Frequency)
	assert.Equal(t, 2, resp.Data[1].LongestStreak)
}

func TestLongest(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "No streaks yet.\n", env.mustRun("longest"))

	seedHabits(env)

	assert.Equal(t, "Longest streak overall: \"Exercise\" with 3 days.\n", env.mustRun("longest"))
	assert.Equal(t, "Longest streak of \"Plan the week\": 2 weeks.\n", env.mustRun("longest", "Plan the week"))
	assert.Equal(t, "Longest streak of \"Paying the bills\": 0 months.\n", env.mustRun("longest", "Paying the bills"))

	res := env.run("longest", "Nope")
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
}

func TestMissed(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "No habits tracked.\n", env.mustRun("missed"))

	seedHabits(env)

	assert.Equal(t,
		"Exercise: 8 days\n"+
			"Plan the week: 0 weeks\n"+
			"Paying the bills: 0 months\n"+
			"Total missed periods: 8\n",
		env.mustRun("missed"))
}

func TestImportExport(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")

	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte(`habits:
  - name: Exercise
    frequency: daily
  - name: Stretch
    frequency: daily
    start_date: "2024-06-10"
    completed: ["2024-06-11", "2024-06-12", "yesterday"]
`), 0644))

	res := env.run("import", in)
	require.NoError(t, res.Err, res.Stderr)
	assert.Contains(t, res.Stdout, "Imported 1 habit(s)")
	assert.Contains(t, res.Stdout, "Skipped 1 already tracked: [Exercise]")
	assert.Contains(t, res.Stderr, "skipping habit that is already tracked")

	res = env.run("longest", "Stretch")
	require.NoError(t, res.Err)
	assert.Equal(t, "Longest streak of \"Stretch\": 2 days.\n", res.Stdout)
	assert.Contains(t, res.Stderr, "dropping invalid completion date")
	assert.Contains(t, res.Stderr, "value=yesterday")

	out := filepath.Join(dir, "out.yaml")
	assert.Equal(t, "Exported 2 habit(s) to "+out+".\n", env.mustRun("export", out))

	habits, err := habitfile.Load(out, testutil.NewClock())
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "Stretch", habits[1].Name)
	assert.Equal(t, habit.Daily, habits[1].Frequency)
	assert.Equal(t, []string{"2024-06-11", "2024-06-12"}, habits[1].Pending, "invalid dates are not exported")
}

func TestImport_InvalidFile(t *testing.T) {
	env := newCLIEnv(t)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("habits:\n  - name: Run\n    frequency: hourly\n"), 0644))

	res := env.run("import", bad)
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "Error [E007]")

	res = env.run("import", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "habit file not found")
}

func TestMetricsTextfile(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Exercise", "-f", "daily")

	path := filepath.Join(t.TempDir(), "habits.prom")
	env.mustRun("done", "Exercise", "--metrics-textfile", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "habits_completions_recorded_total 1")

	env.mustRun("stats", "--metrics-textfile", path)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `habits_snapshots_total{result="ok"} 1`)
	assert.Contains(t, string(data), "habits_habits_tracked 1")
}

func TestMetricsTextfile_WrittenWhenCommandFails(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "habits.prom")

	res := env.run("done", "Nope", "--metrics-textfile", path)
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "Error [E004]")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "habits_completions_recorded_total 0")
}

func TestMetricsTextfile_WriteFailureKeepsCommandError(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "habits.prom")

	res := env.run("done", "Nope", "--metrics-textfile", path)
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))
	assert.Contains(t, res.Stderr, "failed to write metrics")
	assert.Contains(t, res.Stderr, "level=WARN")
}

func TestConfigCommand(t *testing.T) {
	env := newCLIEnv(t)

	path := filepath.Join(t.TempDir(), "habits", "config.yaml")
	assert.Equal(t, "Wrote "+path+".\n", env.mustRun("config", "init", path))

	res := env.run("config", "init", path)
	assert.Equal(t, ExitCommandError, GetExitCode(res.Err))

	out := env.mustRun("config", "show", "--config", path)
	assert.Contains(t, out, "recent_completions: 7")
	assert.Contains(t, out, "format: text")
}

func TestConfigFormatDefault(t *testing.T) {
	env := newCLIEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0644))

	out := env.mustRun("list", "--config", path)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, out)

	out = env.mustRun("list", "--config", path, "--format", "text")
	assert.Equal(t, "No habits tracked.\n", out, "flag overrides config")
}
