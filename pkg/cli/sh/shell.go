// Package sh provides the ishell backed console talking to the
// simulated device over its MQTT link.
package sh

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	linkmqtt "github.com/mcusim/softuart/pkg/link/mqtt"
)

// Shell wraps ishell with the device connection.
type Shell struct {
	Interactive bool

	Shell *ishell.Shell
	Queue *linkmqtt.Queue
}

const shellKey = "$shell"

var (
	evalOnly bool

	commands = []*ishell.Cmd{
		&SendCmd,
		&TextCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell connected through the queue.
func New(q *linkmqtt.Queue) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Queue:       q,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("uart > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	q.Sub(linkmqtt.TopicFromDevice, func(_ string, payload []byte) {
		for _, b := range payload {
			if b >= 0x20 && b < 0x7f || b == '\r' || b == '\n' {
				s.Shell.Printf("%c", b)
			} else {
				s.Shell.Printf("<%02x>", b)
			}
		}
	})
	return s
}

// ShellFrom gets Shell from the ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Send publishes raw bytes to the device.
func (s *Shell) Send(p []byte) {
	token := s.Queue.Pub(linkmqtt.TopicToDevice, p)
	token.Wait()
	if err := token.Error(); err != nil {
		s.Shell.Printf("publish failed: %v\n", err)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// SendCmd sends hex encoded bytes.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "HEXBYTE...",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("hex bytes expected"))
				return
			}
			p, err := hex.DecodeString(strings.Join(c.Args, ""))
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Send(p)
		},
	}

	// TextCmd sends a string byte by byte.
	TextCmd = ishell.Cmd{
		Name:    "text",
		Aliases: []string{"t"},
		Help:    "STRING",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("text expected"))
				return
			}
			ShellFrom(c).Send([]byte(strings.Join(c.Args, " ")))
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	q, err := linkmqtt.NewConfig().NewQueue()
	if err != nil {
		log.Fatalln(err)
	}
	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		log.Fatalln(err)
	}
	defer q.Close()
	New(q).Run(flag.Args()...)
}
