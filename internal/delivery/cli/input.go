package cli

import (
	"bufio"
	"io"
	"strings"
	"time"

	"mindclinic/internal/domain/entity"
	"mindclinic/pkg/render"
	"mindclinic/pkg/validator"

	"github.com/fatih/color"
)

// closedSetRetries caps invalid answers on a closed-choice prompt before the
// prompt behaves like "back".
const closedSetRetries = 3

var promptStyle = color.New(color.FgWhite, color.Bold)

// Prompt describes one field the input manager collects. Tag is a
// go-playground validation tag; Choices, when set, restrict answers to a
// closed set.
type Prompt struct {
	Label   string
	Tag     string
	Choices []string
}

// InputManager mediates every read from the terminal. It applies the
// inactivity timeout before accepting a line and refreshes the session's
// last-activity stamp after.
type InputManager struct {
	scanner  *bufio.Scanner
	out      io.Writer
	validate *validator.CustomValidator
	timeout  time.Duration
	session  *entity.Session
	now      func() time.Time
}

func NewInputManager(in io.Reader, out io.Writer, validate *validator.CustomValidator, timeout time.Duration) *InputManager {
	return &InputManager{
		scanner:  bufio.NewScanner(in),
		out:      out,
		validate: validate,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Bind attaches the active session; pass nil after logout
func (im *InputManager) Bind(sess *entity.Session) {
	im.session = sess
}

// ReadLine blocks for one line of input. Returns ErrSessionExpired when the
// bound session idled strictly longer than the timeout, ErrQuit on EOF.
func (im *InputManager) ReadLine(prompt string) (string, error) {
	promptStyle.Fprint(im.out, prompt)

	if !im.scanner.Scan() {
		if err := im.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrQuit
	}
	line := strings.TrimSpace(im.scanner.Text())

	now := im.now()
	if im.session != nil {
		if im.session.ExpiredAt(now, im.timeout) {
			return "", ErrSessionExpired
		}
		im.session.Touch(now)
	}
	return line, nil
}

// Collect walks the prompt sequence. "back" abandons the whole sequence;
// "reset" returns to the previous field; an invalid open-set value
// re-prompts the same field indefinitely, a closed-set one for at most
// three tries.
func (im *InputManager) Collect(prompts []Prompt) ([]string, error) {
	values := make([]string, len(prompts))
	retries := make([]int, len(prompts))

	i := 0
	for i < len(prompts) {
		p := prompts[i]
		line, err := im.ReadLine(p.Label + ": ")
		if err != nil {
			return nil, err
		}

		if strings.EqualFold(line, "back") {
			return nil, ErrBack
		}
		if strings.EqualFold(line, "reset") {
			if i > 0 {
				i--
				retries[i] = 0
			}
			continue
		}

		if len(p.Choices) > 0 {
			if !containsFold(p.Choices, line) {
				retries[i]++
				if retries[i] >= closedSetRetries {
					return nil, ErrBack
				}
				render.Error(im.out, "Please choose one of: %s", strings.Join(p.Choices, ", "))
				continue
			}
		} else if err := im.validate.Var(line, p.Tag); err != nil {
			reason := "try again"
			if msg, ok := im.validate.FormatValidationErrors(err)[""]; ok {
				reason = msg
			}
			render.Error(im.out, "Invalid %s: %s (or type back/reset)", strings.ToLower(p.Label), reason)
			continue
		}

		values[i] = line
		i++
	}
	return values, nil
}

func containsFold(choices []string, value string) bool {
	for _, c := range choices {
		if strings.EqualFold(c, value) {
			return true
		}
	}
	return false
}
