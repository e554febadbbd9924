package terminal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `order_id,order_item_id,product_id,seller_id,price,order_approved_at,seller_city,seller_state
o1,1,p1,s1,58.90,2017-01-13 09:45:35,volta redonda,SP
o1,2,p2,s1,10.00,2017-01-13 09:45:35,volta redonda,SP
o2,1,p3,s2,239.90,2017-03-26 11:05:13,sao paulo,SP
o3,1,p4,s3,199.00,2017-02-02 08:00:00,borda da mata,MG
o4,1,p5,s1,20.00,2017-03-01 10:00:00,volta redonda,SP
o5,1,p6,s3,15.00,,borda da mata,MG
`

type fixture struct {
	dir        string
	configPath string
}

func setupFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "all_data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(ordersCSV), 0o644))

	ini := fmt.Sprintf("[olist]\ncsv = %s\ndb = %s\n\n[other]\ndb = %s\ncurrency = USD\n",
		csvPath, filepath.Join(dir, "olist.db"), filepath.Join(dir, "other.db"))
	configPath := filepath.Join(dir, "profiles.ini")
	require.NoError(t, os.WriteFile(configPath, []byte(ini), 0o644))

	return &fixture{dir: dir, configPath: configPath}
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Output: &out})
	cli.SetArgs(append(args, "--config", f.configPath))
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_Profiles(t *testing.T) {
	f := setupFixture(t)

	out, err := f.run(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "olist:"+filepath.Join(f.dir, "olist.db"))
	assert.Contains(t, out, "other:")
}

func TestCLI_ImportAndReport(t *testing.T) {
	f := setupFixture(t)

	out, err := f.run(t, "import", "--profile", "olist")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 6 order lines")
	assert.Contains(t, out, "1 without approval time")
	assert.Contains(t, out, "Approved between 2017-01-13 and 2017-03-26")

	t.Run("replace does not duplicate lines", func(t *testing.T) {
		out, err := f.run(t, "import", "--profile", "olist", "--replace")
		require.NoError(t, err)
		assert.Contains(t, out, "Stored: 6 lines")
	})

	t.Run("table report over the stored period", func(t *testing.T) {
		out, err := f.run(t, "report", "--profile", "olist")
		require.NoError(t, err)
		assert.Contains(t, out, "Sellers Dashboard (73 days)")
		assert.Contains(t, out, "Active Period: 2017-01-13 to 2017-03-26")
		assert.Contains(t, out, "Total Revenue: BRL 527.80")
		assert.Contains(t, out, "=== Best Sellers by Revenue ===")
		assert.Contains(t, out, "s1 2017-02")
	})

	t.Run("plain report over a window", func(t *testing.T) {
		out, err := f.run(t, "report", "--profile", "olist", "--format", "plain",
			"--start", "2017-02-01", "--end", "2017-02-28")
		require.NoError(t, err)
		assert.Contains(t, out, "Period: 2017-02-01 to 2017-02-28 (28 days, 1 order lines)")
		assert.Contains(t, out, "Total Revenue: BRL 199.00")
		assert.Contains(t, out, "1. s3: 199.00 BRL (1 orders)")
	})

	t.Run("error - inverted window", func(t *testing.T) {
		_, err := f.run(t, "report", "--profile", "olist", "--start", "2017-03-01", "--end", "2017-01-01")
		assert.ErrorContains(t, err, "invalid date range")
	})

	t.Run("error - unknown format", func(t *testing.T) {
		_, err := f.run(t, "report", "--profile", "olist", "--format", "html")
		assert.ErrorContains(t, err, `unsupported format "html"`)
	})
}

func TestCLI_Errors(t *testing.T) {
	f := setupFixture(t)

	t.Run("unknown profile", func(t *testing.T) {
		_, err := f.run(t, "import", "--profile", "missing")
		assert.ErrorContains(t, err, "profile missing not found")
	})

	t.Run("profile without csv", func(t *testing.T) {
		_, err := f.run(t, "import", "--profile", "other")
		assert.ErrorContains(t, err, "has no csv path")
	})

	t.Run("report on empty database", func(t *testing.T) {
		_, err := f.run(t, "report", "--profile", "other")
		assert.ErrorContains(t, err, "no approved order lines")
	})

	t.Run("missing profile flag", func(t *testing.T) {
		_, err := f.run(t, "report")
		assert.Error(t, err)
	})
}
