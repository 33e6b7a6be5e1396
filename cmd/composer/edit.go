package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grcflow/notifcomposer/internal/preview"
	"github.com/grcflow/notifcomposer/internal/service"
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/render"
)

const editHelp = `commands:
  append <type>                 add a block and select it
  remove <id>                   delete a block
  move <id> up|down             swap a block with its neighbour
  content <id> <text>           replace the content of a block, \n starts a new line
  align <id> left|center|right  set the alignment of a block
  color <id> info|warning|danger
  select <id>                   make a block active
  undo | redo
  channel email|in-app
  theme light|dark
  entity <type>                 resolve variables against other sample data
  blocks                        list the blocks, * marks the active one
  show [text|html|tree]         print the current preview
  save <file>                   write the document as JSON
  help | quit`

type editOptions struct {
	script     string
	entityType string
	out        string
}

func newEditCmd(c *cliContext) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit [document]",
		Short: "Edit a block document line by line with a live preview",
		Long: `Edit a block document line by line with a live preview.

Commands are read from --script or stdin, one per line; blank lines and lines
starting with # are skipped. The preview re-renders after every change.

` + editHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, c, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "file with editor commands (default stdin)")
	cmd.Flags().StringVar(&opts.entityType, "entity", service.DefaultSampleEntity, "entity type whose sample data fills variables")
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "write the final document to this file")
	return cmd
}

func runEdit(cmd *cobra.Command, c *cliContext, opts *editOptions, args []string) error {
	doc := blocks.NewDocument()
	if len(args) == 1 {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		if doc, err = decodeDocument(data); err != nil {
			return err
		}
	}

	var script io.Reader = cmd.InOrStdin()
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		script = f
	}

	values, err := service.NewStaticPreviewData().SampleContext(cmd.Context(), opts.entityType)
	if err != nil {
		return err
	}

	session := preview.NewSession(doc)
	ctrl := preview.NewController(session, c.renderer(), c.logger, values)
	defer ctrl.Close()

	shell := &editShell{session: session, ctrl: ctrl, out: cmd.OutOrStdout(), cmd: cmd}
	ctrl.OnRender(func(tree *render.Tree) {
		shell.renders++
		c.logger.WithField("blocks", len(tree.BlockNodes())).
			WithField("channel", tree.Channel).
			Debug("Preview re-rendered")
	})

	scanner := bufio.NewScanner(script)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := shell.exec(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}

	if opts.out != "" {
		return shell.save(opts.out)
	}
	return nil
}

// editShell applies editor commands to a session. Every change flows through
// the session so the controller re-renders and undo history stays intact.
type editShell struct {
	session *preview.Session
	ctrl    *preview.Controller
	out     io.Writer
	cmd     *cobra.Command
	renders int
}

func (s *editShell) exec(line string) (quit bool, err error) {
	name, rest := cutWord(line)
	switch name {
	case "append":
		t := blocks.BlockType(rest)
		if !t.IsValid() {
			return false, fmt.Errorf("unknown block type %q", rest)
		}
		_, err = fmt.Fprintln(s.out, s.session.Append(t))
	case "remove":
		id, err := s.blockID(rest)
		if err != nil {
			return false, err
		}
		s.session.Remove(id)
	case "move":
		id, dir := cutWord(rest)
		if _, err := s.blockID(id); err != nil {
			return false, err
		}
		direction := map[string]int{"up": -1, "down": 1}[dir]
		if direction == 0 {
			return false, fmt.Errorf("move direction must be up or down, got %q", dir)
		}
		s.session.Move(s.session.Document().IndexOf(id), direction)
	case "content":
		id, text := cutWord(rest)
		if _, err := s.blockID(id); err != nil {
			return false, err
		}
		s.session.UpdateContent(id, unescapeNewlines(text))
	case "align":
		id, value := cutWord(rest)
		if _, err := s.blockID(id); err != nil {
			return false, err
		}
		a := blocks.Alignment(value)
		if !a.IsValid() {
			return false, fmt.Errorf("unknown alignment %q", value)
		}
		s.session.UpdateStyle(id, blocks.Styles{Alignment: a})
	case "color":
		id, value := cutWord(rest)
		if _, err := s.blockID(id); err != nil {
			return false, err
		}
		color := blocks.AlertColor(value)
		if !color.IsValid() {
			return false, fmt.Errorf("unknown alert color %q", value)
		}
		s.session.UpdateStyle(id, blocks.Styles{Color: color})
	case "select":
		id, err := s.blockID(rest)
		if err != nil {
			return false, err
		}
		s.session.Select(id)
	case "undo":
		if !s.session.Undo() {
			_, err = fmt.Fprintln(s.out, "nothing to undo")
		}
	case "redo":
		if !s.session.Redo() {
			_, err = fmt.Fprintln(s.out, "nothing to redo")
		}
	case "channel":
		ch := render.Channel(rest)
		if !ch.IsValid() {
			return false, fmt.Errorf("unsupported channel %q", rest)
		}
		s.ctrl.SetChannel(ch)
	case "theme":
		th := render.Theme(rest)
		if !th.IsValid() {
			return false, fmt.Errorf("unsupported theme %q", rest)
		}
		s.ctrl.SetTheme(th)
	case "entity":
		values, err := service.NewStaticPreviewData().SampleContext(s.cmd.Context(), rest)
		if err != nil {
			return false, err
		}
		s.ctrl.SetContext(values)
	case "blocks":
		err = s.listBlocks()
	case "show":
		err = s.show(rest)
	case "save":
		if rest == "" {
			return false, fmt.Errorf("save needs a file name")
		}
		err = s.save(rest)
	case "help":
		_, err = fmt.Fprintln(s.out, editHelp)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, try help", name)
	}
	return false, err
}

func (s *editShell) blockID(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("missing block id")
	}
	if s.session.Document().IndexOf(id) < 0 {
		return "", fmt.Errorf("no block with id %q", id)
	}
	return id, nil
}

func (s *editShell) listBlocks() error {
	active := s.session.ActiveID()
	for i, b := range s.session.Document().Blocks() {
		mark := " "
		if b.ID == active {
			mark = "*"
		}
		if _, err := fmt.Fprintf(s.out, "%s %2d %-10s %-10s %s\n", mark, i+1, b.ID, b.Type, b.Content); err != nil {
			return err
		}
	}
	return nil
}

func (s *editShell) show(format string) error {
	tree := s.ctrl.Tree()
	switch format {
	case "", formatText:
		text, err := render.PlainText(tree.HTML())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out, text)
		return err
	case formatHTML:
		_, err := fmt.Fprintln(s.out, tree.HTML())
		return err
	case formatTree:
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		return fmt.Errorf("show format must be text, html or tree, got %q", format)
	}
}

func (s *editShell) save(path string) error {
	data, err := json.MarshalIndent(s.session.Document(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// unescapeNewlines turns the two-character sequence \n into a line break so
// single-line commands can write multi-line content such as list items.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// cutWord splits off the first space-separated word of s
func cutWord(s string) (word, rest string) {
	word, rest, _ = strings.Cut(strings.TrimSpace(s), " ")
	return word, strings.TrimSpace(rest)
}
