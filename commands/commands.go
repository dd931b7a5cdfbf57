package commands

import (
	"io"
	"log"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrUnknownCommand = errors.New("unknown command")

type cmd func() error
type Commands struct {
	log      *log.Logger
	commands map[string]cmd
}

func NewCommands(logger *log.Logger) *Commands {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Commands{log: logger, commands: make(map[string]cmd)}
}

// Exec runs the command whose name starts with command. When several match,
// the longest name wins.
func (c *Commands) Exec(command string) error {
	cmd := c.findCommandByLongestPrefix(command)
	if cmd == nil {
		c.log.Printf("Command %s not found\n", command)
		return errors.Wrapf(ErrUnknownCommand, "%q", command)
	}
	if err := cmd(); err != nil {
		c.log.Printf("Command %s failed: %v", command, err)
		return errors.Wrapf(err, "%s", command)
	}
	return nil
}

func (c *Commands) findCommandByLongestPrefix(commandPrefix string) cmd {
	if commandPrefix == "" {
		return nil
	}
	if cmd, ok := c.commands[commandPrefix]; ok {
		return cmd
	}
	best := ""
	var longestCmd cmd
	for name, cmd := range c.commands {
		if !strings.HasPrefix(name, commandPrefix) {
			continue
		}
		// equal lengths go to the lexically smaller name
		if longestCmd == nil || len(name) > len(best) || (len(name) == len(best) && name < best) {
			best = name
			longestCmd = cmd
		}
	}
	return longestCmd
}

func (c *Commands) Register(name string, command func() error) {
	c.commands[name] = command
}

func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
