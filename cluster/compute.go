// Command cluster prints the normalized compression distance between every pair of files in a
// directory, as a basis for clustering them.
package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumin/arith"
	"github.com/pkg/errors"
)

var (
	compressor = flag.String("i", "arith", "compressor, arith or targz")
	dataDir    = flag.String("d", "", "data directory")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if err := run(*compressor, *dataDir); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(compressor, dir string) error {
	data, err := listFiles(dir)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(data) < 2 {
		return errors.Errorf("need at least two files in %q, got %d", dir, len(data))
	}

	c := newComplexity(compressor)
	distMat, err := distanceMatrix(c, data)
	if err != nil {
		return errors.Wrap(err, "")
	}

	log.Printf("[%s]", names(data))
	log.Printf("[%s]", joinFloats(distMat))
	return nil
}

func names(data []string) string {
	quoted := make([]string, 0, len(data))
	for _, fpath := range data {
		name := filepath.Base(fpath)
		quoted = append(quoted, strconv.Quote(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	return strings.Join(quoted, ",")
}

func joinFloats(fs []float64) string {
	buf := bytes.NewBuffer(nil)
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return buf.String()
}

// complexity approximates the Kolmogorov complexity of a file by its compressed size.
type complexity struct {
	compressor string
	cache      map[string]float64
}

func newComplexity(compressor string) *complexity {
	return &complexity{compressor: compressor, cache: make(map[string]float64)}
}

func (c *complexity) size(fpath string) (float64, error) {
	if size, ok := c.cache[fpath]; ok {
		return size, nil
	}

	var size float64
	var err error
	switch c.compressor {
	case "arith":
		size, err = sizeArith(fpath)
	case "targz":
		size, err = sizeTarGz(fpath)
	default:
		return -1, errors.Errorf("unknown compressor %q", c.compressor)
	}
	if err != nil {
		return -1, errors.Wrap(err, fpath)
	}

	c.cache[fpath] = size
	return size, nil
}

func sizeArith(fpath string) (float64, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	defer f.Close()

	st, err := arith.Stat(f)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	return float64(st.Compressed), nil
}

func sizeTarGz(fpath string) (float64, error) {
	dst, err := os.CreateTemp("", "cluster.targz")
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	dst.Close()
	defer os.Remove(dst.Name())

	if err := exec.Command("tar", "zcf", dst.Name(), fpath).Run(); err != nil {
		return -1, errors.Wrap(err, "")
	}
	info, err := os.Stat(dst.Name())
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	return float64(info.Size()), nil
}

// distance returns the normalized compression distance
// (C(xy) - min(C(x), C(y))) / max(C(x), C(y)).
func distance(c *complexity, x, y string) (float64, error) {
	xy, err := os.CreateTemp("", filepath.Base(x)+filepath.Base(y))
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	defer os.Remove(xy.Name())
	if err := concatFiles(xy, x, y); err != nil {
		return -1, errors.Wrap(err, "")
	}

	kxy, err := c.size(xy.Name())
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	kx, err := c.size(x)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	ky, err := c.size(y)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}

	minxy, maxxy := kx, ky
	if ky < kx {
		minxy, maxxy = ky, kx
	}
	return (kxy - minxy) / maxxy, nil
}

func concatFiles(tmpf *os.File, fs ...string) error {
	for _, fpath := range fs {
		err := func(fpath string) error {
			f, err := os.Open(fpath)
			if err != nil {
				return errors.Wrap(err, "")
			}
			defer f.Close()
			if _, err := io.Copy(tmpf, f); err != nil {
				return errors.Wrap(err, "")
			}
			return nil
		}(fpath)
		if err != nil {
			return errors.Wrap(err, "")
		}
	}
	if err := tmpf.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// distanceMatrix returns the condensed upper triangle of the pairwise distances.
func distanceMatrix(c *complexity, data []string) ([]float64, error) {
	n := len(data)
	mat := make([]float64, 0, n*(n-1)/2)
	for i, dx := range data[:n-1] {
		for _, dy := range data[i+1:] {
			dist, err := distance(c, dx, dy)
			if err != nil {
				return nil, errors.Wrap(err, "")
			}
			mat = append(mat, dist)
			log.Printf("%q-%q: %f", dx, dy, dist)
		}
	}
	return mat, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	data := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data = append(data, filepath.Join(dir, e.Name()))
	}
	return data, nil
}
