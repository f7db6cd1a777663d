package bridge

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Runner evaluates one JavaScript for Automation expression and returns
// what osascript printed.
type Runner func(ctx context.Context, script string) ([]byte, error)

// Client talks to the player through osascript. Each Object it hands out is
// an object specifier expression that is re-evaluated on every read, so
// references stay lazy and every read is an independent round trip.
type Client struct {
	appName string
	timeout time.Duration
	run     Runner
}

// NewClient creates a client driving the named scripting application
// through the osascript binary at path.
func NewClient(path, appName string, timeout time.Duration) *Client {
	return NewClientWithRunner(appName, timeout, execRunner(path))
}

// NewClientWithRunner creates a client with a custom evaluator.
func NewClientWithRunner(appName string, timeout time.Duration, run Runner) *Client {
	return &Client{appName: appName, timeout: timeout, run: run}
}

// Application returns the root object of the player.
func (c *Client) Application() Object {
	name, _ := json.Marshal(c.appName)
	return &ref{c: c, expr: "Application(" + string(name) + ")"}
}

// Properties that return a plain list of references rather than an
// element collection; members are addressed by index into the call result.
var listProperties = map[string]bool{
	"currentAirPlayDevices": true,
	"selection":             true,
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var errorCode = regexp.MustCompile(`\((-?\d+)\)\s*$`)

func execRunner(path string) Runner {
	return func(ctx context.Context, script string) ([]byte, error) {
		cmd := exec.CommandContext(ctx, path, "-l", "JavaScript", "-e", script)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrScriptFailed, ctx.Err())
			}
			return nil, classify(strings.TrimSpace(stderr.String()), err)
		}
		return bytes.TrimSpace(stdout.Bytes()), nil
	}
}

// classify maps osascript's "execution error: ... (-1728)" messages onto
// the bridge sentinels.
func classify(msg string, err error) error {
	if msg == "" {
		msg = err.Error()
	}
	m := errorCode.FindStringSubmatch(msg)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrScriptFailed, msg)
	}
	switch m[1] {
	case "-1728", "-1719": // can't get object / invalid index
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case "-1708", "-10000": // message not understood / handler failed
		return fmt.Errorf("%w: %s", ErrUnsupported, msg)
	default:
		return fmt.Errorf("%w: %s", ErrScriptFailed, msg)
	}
}

func (c *Client) eval(ctx context.Context, script string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.run(ctx, script)
}

// evalJSON evaluates JSON.stringify(expr) and decodes the result. An empty
// output means the expression produced undefined.
func (c *Client) evalJSON(ctx context.Context, expr string, v any) (bool, error) {
	out, err := c.eval(ctx, "JSON.stringify("+expr+")")
	if err != nil {
		return false, err
	}
	if len(out) == 0 || string(out) == "undefined" {
		return false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrScriptFailed, expr, err)
	}
	return true, nil
}

type ref struct {
	c    *Client
	expr string
}

func (r *ref) String() string { return r.expr }

func (r *ref) child(expr string) *ref { return &ref{c: r.c, expr: expr} }

func checkName(name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%w: invalid attribute name %q", ErrUnsupported, name)
	}
	return nil
}

func (r *ref) Properties(ctx context.Context) (map[string]any, error) {
	var bag map[string]any
	ok, err := r.c.evalJSON(ctx, r.expr+".properties()", &bag)
	if err != nil {
		return nil, err
	}
	if !ok || bag == nil {
		return nil, fmt.Errorf("%w: %s has no properties", ErrNotFound, r.expr)
	}
	return bag, nil
}

func (r *ref) Get(ctx context.Context, name string) (any, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var v any
	ok, err := r.c.evalJSON(ctx, r.expr+"."+name+"()", &v)
	if err != nil {
		return nil, err
	}
	if !ok {
		// specifiers and functions stringify to undefined
		return nil, fmt.Errorf("%w: %s.%s is not a plain value", ErrUnsupported, r.expr, name)
	}
	return v, nil
}

// Data coerces the attribute to text; AppleScript data renders as
// «data TYPEHEX», which is decoded back to bytes.
func (r *ref) Data(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	script := "(function(){var d=" + r.expr + "." + name + "();" +
		"return (d===null||d===undefined)?\"\":String(d);})()"
	out, err := r.c.eval(ctx, script)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s.%s is empty", ErrNotFound, r.expr, name)
	}
	return decodeDataLiteral(out), nil
}

var dataLiteral = regexp.MustCompile(`^«data [^»]{4}([0-9A-Fa-f]*)»$`)

func decodeDataLiteral(out []byte) []byte {
	m := dataLiteral.FindSubmatch(out)
	if m == nil {
		return out
	}
	b, err := hex.DecodeString(string(m[1]))
	if err != nil {
		return out
	}
	return b
}

// exists confirms that expr resolves by asking for its class.
func (r *ref) exists(ctx context.Context, expr string) error {
	var class any
	ok, err := r.c.evalJSON(ctx, expr+".class()", &class)
	if err != nil {
		return err
	}
	if !ok || class == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, expr)
	}
	return nil
}

func (r *ref) Object(ctx context.Context, name string) (Object, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	expr := r.expr + "." + name + "()"
	if err := r.exists(ctx, expr); err != nil {
		return nil, err
	}
	return r.child(expr), nil
}

func (r *ref) Elements(ctx context.Context, name string) ([]Object, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	base := r.expr + "." + name
	if listProperties[name] {
		base += "()"
	}

	var count int
	if _, err := r.c.evalJSON(ctx, base+".length", &count); err != nil {
		return nil, err
	}

	members := make([]Object, count)
	for i := range members {
		members[i] = r.child(base + "[" + strconv.Itoa(i) + "]")
	}
	return members, nil
}

func (r *ref) ByID(ctx context.Context, collection string, id int64) (Object, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	expr := r.expr + "." + collection + ".byId(" + strconv.FormatInt(id, 10) + ")"
	if err := r.exists(ctx, expr); err != nil {
		return nil, err
	}
	return r.child(expr), nil
}

// Search resolves the native search into track ids so that each result is
// addressed by a stable specifier instead of re-running the search.
func (r *ref) Search(ctx context.Context, query string) ([]Object, error) {
	q, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	var ids []int64
	expr := r.expr + ".search({for: " + string(q) + "}).map(function(t){return t.id();})"
	if _, err := r.c.evalJSON(ctx, expr, &ids); err != nil {
		return nil, err
	}

	results := make([]Object, len(ids))
	for i, id := range ids {
		results[i] = r.child(r.expr + ".tracks.byId(" + strconv.FormatInt(id, 10) + ")")
	}
	return results, nil
}
