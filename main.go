package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/greyh4t/hackpool"
	"github.com/greyh4t/groupsum/joiner"
	"github.com/greyh4t/groupsum/processbar"
	"github.com/greyh4t/groupsum/reducer"
	"github.com/greyh4t/groupsum/report"
	"github.com/greyh4t/groupsum/source"
	"github.com/greyh4t/groupsum/zhttp"
	"github.com/guonaihong/clop"
)

type Conf struct {
	Top         int           `clop:"-n; --top" usage:"number of largest group sums to add up" default:"3"`
	Literal     bool          `clop:"-L; --literal" usage:"drop a last group that is not followed by a blank line"`
	Output      string        `clop:"-o; --output" usage:"output format: text or yaml" default:"text"`
	Connections int           `clop:"-c; --connections" usage:"number of datasets reduced at once" default:"4"`
	Retry       int           `clop:"-r; --retry" usage:"number of retries for url datasets" default:"3"`
	Timeout     time.Duration `clop:"-t; --timeout" usage:"timeout for url datasets" default:"30s"`
	Proxy       string        `clop:"-p; --proxy" usage:"proxy. Example: http://127.0.0.1:8080"`
	Headers     []string      `clop:"-H; --header; greedy" usage:"http header. Example: Cookie:session=53616c74"`
	Session     string        `clop:"-s; --session" usage:"adventofcode.com session token, sent as a cookie"`
	SkipVerify  bool          `clop:"-k; --skipverify" usage:"skip verify server certificate"`
	Quiet       bool          `clop:"-q; --quiet" usage:"don't show progress for several datasets"`
	Datasets    []string      `clop:"args=dataset" usage:"input files, urls or - for stdin. Default: data/2022/day1"`
	headers     map[string]string
}

func checkConf(conf *Conf) error {
	if conf.Top < 0 {
		return fmt.Errorf("top must not be negative: %d", conf.Top)
	}

	if conf.Output != report.FormatText && conf.Output != report.FormatYAML {
		return fmt.Errorf("unknown output format %q", conf.Output)
	}

	if conf.Connections <= 0 {
		conf.Connections = 4
	}

	if conf.Retry <= 0 {
		conf.Retry = 1
	}

	if conf.Timeout <= 0 {
		conf.Timeout = time.Second * 30
	}

	if len(conf.Datasets) == 0 {
		conf.Datasets = []string{source.DefaultPath}
	}

	conf.headers = parseHeaders(conf.Headers)
	if conf.Session != "" {
		conf.headers["Cookie"] = "session=" + conf.Session
	}

	return nil
}

func parseHeaders(headers []string) map[string]string {
	m := map[string]string{}
	for _, header := range headers {
		s := strings.SplitN(header, ":", 2)
		key := strings.TrimRight(s[0], " ")
		if len(s) == 2 {
			m[key] = strings.TrimLeft(s[1], " ")
		} else {
			m[key] = ""
		}
	}
	return m
}

func (conf *Conf) options() []reducer.Option {
	opts := []reducer.Option{reducer.WithTop(conf.Top)}
	if conf.Literal {
		opts = append(opts, reducer.WithLiteral())
	}
	return opts
}

type task struct {
	id   int
	name string
	opts []reducer.Option
}

func reduce(args ...interface{}) {
	opener := args[0].(*source.Opener)
	t := args[1].(task)
	fn := args[2].(func(task, *reducer.Result, error))

	res, err := opener.Reduce(t.name, t.opts...)
	fn(t, res, err)
}

// run reduces every dataset and writes the reports to stdout in argument
// order. Nothing is written to stdout unless every dataset succeeds.
func run(conf *Conf, stdin io.Reader, stdout, stderr io.Writer) error {
	z, err := zhttp.New(conf.Timeout, conf.Proxy, conf.SkipVerify)
	if err != nil {
		return err
	}

	opener := source.New(z, conf.headers, conf.Retry)
	opener.Stdin = stdin

	multi := len(conf.Datasets) > 1

	var bar *processbar.Bar
	if multi && !conf.Quiet {
		bar = processbar.New(stderr, len(conf.Datasets))
		bar.Flush()
	}

	var (
		out      bytes.Buffer
		errLock  sync.Mutex
		firstErr error
	)
	join := joiner.NewMem(&out)

	fail := func(err error) {
		errLock.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errLock.Unlock()
	}

	callback := func(t task, res *reducer.Result, err error) {
		if err != nil {
			fail(err)
			return
		}

		block, err := report.Render(conf.Output, t.name, res, multi)
		if err != nil {
			fail(err)
			return
		}

		err = join.Add(t.id, block)
		if err != nil {
			fail(fmt.Errorf("write report %s: %w", t.name, err))
			return
		}

		if bar != nil {
			bar.Incr()
			bar.Flush()
		}
	}

	pool := hackpool.New(conf.Connections, reduce)

	go func() {
		opts := conf.options()
		for i, name := range conf.Datasets {
			pool.Push(opener, task{id: i, name: name, opts: opts}, callback)
		}
		pool.CloseQueue()
	}()

	pool.Run()

	if bar != nil {
		bar.Finish()
	}

	if firstErr != nil {
		return firstErr
	}

	err = join.Merge()
	if err != nil {
		return err
	}

	_, err = io.Copy(stdout, &out)
	return err
}

func main() {
	conf := &Conf{}
	clop.CommandLine.SetExit(true)
	clop.SetVersion("1.0.0")
	clop.Bind(conf)

	err := checkConf(conf)
	if err != nil {
		log.Fatalln("[-] Invalid arguments:", err)
	}

	err = run(conf, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalln("[-]", describe(err))
	}
}
