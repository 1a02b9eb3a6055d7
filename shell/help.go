package shell

import (
	"embed"
	"errors"
	"strings"
)

//go:embed helptext/*.txt
var helptext embed.FS

func usage(topic string) (*Response, error) {
	name := "usage"
	if topic != "" {
		name = topic
	}
	dat, err := helptext.ReadFile("helptext/" + name + ".txt")
	if err != nil {
		return nil, errors.New("there is no help text for the topic " + topic)
	}
	return msg(strings.TrimRight(string(dat), "\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("")
	}
	return usage(cmd.args[0])
}
