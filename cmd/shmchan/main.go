// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli"

	"code.hybscloud.com/shmchan"
)

func main() {
	myApp := cli.NewApp()
	myApp.Name = "shmchan"
	myApp.Usage = "send and receive messages over a shared-memory channel"
	myApp.Commands = []cli.Command{
		{
			Name:  "send",
			Usage: "read lines from stdin and send each as one message",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "name", Usage: "channel name", Value: "shmchan0"},
				cli.StringFlag{Name: "base-dir", Usage: "directory backing the shared page and events"},
				cli.Int64Flag{Name: "rate", Usage: "cap send rate in bytes/sec, 0 disables"},
				cli.StringFlag{Name: "every", Usage: "cron expression to also send a heartbeat message"},
				cli.BoolFlag{Name: "gzip", Usage: "gzip-compress each message payload"},
			},
			Action: runSend,
		},
		{
			Name:  "recv",
			Usage: "receive messages and print each to stdout",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "name", Usage: "channel name", Value: "shmchan0"},
				cli.StringFlag{Name: "base-dir", Usage: "directory backing the shared page and events"},
				cli.BoolFlag{Name: "gzip", Usage: "gunzip each message payload"},
			},
			Action: runRecv,
		},
	}
	if err := myApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func senderOptions(c *cli.Context) []shmchan.Option {
	var opts []shmchan.Option
	if dir := c.String("base-dir"); dir != "" {
		opts = append(opts, shmchan.WithBaseDir(dir))
	}
	if rate := c.Int64("rate"); rate > 0 {
		opts = append(opts, shmchan.WithRateLimit(rate))
	}
	return opts
}

func runSend(c *cli.Context) error {
	sender, err := shmchan.NewSender(c.String("name"), senderOptions(c)...)
	if err != nil {
		return errors.Wrap(err, "shmchan: open sender")
	}
	defer sender.Close()

	gzipOn := c.Bool("gzip")
	send := func(line string) error {
		return sender.SendMessage(func(w *shmchan.SendStream) error {
			if !gzipOn {
				_, err := io.WriteString(w, line)
				return err
			}
			gz := gzip.NewWriter(w)
			if _, err := io.WriteString(gz, line); err != nil {
				return err
			}
			return gz.Close()
		})
	}

	if expr := c.String("every"); expr != "" {
		sched := cron.New()
		if _, err := sched.AddFunc(expr, func() {
			if err := send(fmt.Sprintf("heartbeat %s", time.Now().Format(time.RFC3339))); err != nil {
				log.Printf("shmchan: heartbeat send failed: %v", err)
			}
		}); err != nil {
			return errors.Wrap(err, "shmchan: invalid --every expression")
		}
		sched.Start()
		defer sched.Stop()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := send(scanner.Text()); err != nil {
			return errors.Wrap(err, "shmchan: send")
		}
	}
	return scanner.Err()
}

func runRecv(c *cli.Context) error {
	var opts []shmchan.Option
	if dir := c.String("base-dir"); dir != "" {
		opts = append(opts, shmchan.WithBaseDir(dir))
	}
	receiver, err := shmchan.NewReceiver(c.String("name"), opts...)
	if err != nil {
		return errors.Wrap(err, "shmchan: open receiver")
	}
	defer receiver.Close()

	gzipOn := c.Bool("gzip")
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		entered := false
		_, err := shmchan.ReceiveMessage(receiver, func(r *shmchan.ReceiveStream) (int64, error) {
			entered = true
			var body io.Reader = r
			if gzipOn {
				gz, err := gzip.NewReader(r)
				if err != nil {
					return 0, err
				}
				defer gz.Close()
				body = gz
			}
			return io.Copy(out, body)
		})
		if err != nil {
			return errors.Wrap(err, "shmchan: receive")
		}
		if !entered {
			return nil // channel was closed while waiting for the next message
		}
		fmt.Fprintln(out)
		out.Flush()
	}
}
