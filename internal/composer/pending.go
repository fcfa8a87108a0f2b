package composer

import (
	"math"

	"github.com/dshills/modal/internal/motion"
	"github.com/dshills/modal/internal/operator"
	"github.com/dshills/modal/internal/register"
	"github.com/dshills/modal/internal/textobj"
)

// pendState tracks where the pending command accumulator is in the
// grammar.
type pendState uint8

const (
	// stateInitial is waiting for count, register, operator, motion,
	// or a simple command.
	stateInitial pendState = iota

	// stateCount is accumulating the pre-operator count.
	stateCount

	// stateRegister is waiting for a register name after ".
	stateRegister

	// stateOperator has an operator, waiting for motion/text-object.
	stateOperator

	// stateOperatorCount is accumulating the post-operator count.
	stateOperatorCount

	// stateGPrefix has received 'g', waiting for the second key.
	stateGPrefix

	// stateObjectScope has received 'i' or 'a', waiting for the object
	// key.
	stateObjectScope

	// stateCharArg is waiting for the character argument of f/F/t/T,
	// r, q, or @.
	stateCharArg
)

// pendStatus is the result of feeding one rune to the accumulator.
type pendStatus uint8

const (
	pendMore pendStatus = iota
	pendComplete
	pendInvalid
)

// parsed is a fully accumulated command ready for dispatch.
type parsed struct {
	// count is the combined count, 0 when none was typed.
	count int

	// reg is the selected register, 0 for default.
	reg rune

	op     *operator.Operator
	mot    *motion.Motion
	object *textobj.Object
	scope  textobj.Scope

	// charArg carries the argument of f/F/t/T and r.
	charArg rune

	// linewise marks the doubled-operator shorthand (dd, yy).
	linewise bool

	// simple is a single-key command (x, p, J, q, @, ...), 0 when the
	// command is operator/motion shaped.
	simple rune

	// keylen is how many key events the command consumed, needed when
	// macro playback must un-record its own trigger keys.
	keylen int
}

// effCount returns the effective count, defaulting to 1.
func (p parsed) effCount() int {
	if p.count <= 0 {
		return 1
	}
	return p.count
}

// pending is the PendingCommand accumulator. It is purely syntactic:
// resolution against the buffer happens at dispatch.
type pending struct {
	state pendState

	count1 int
	count2 int
	has1   bool
	has2   bool

	reg     rune
	op      *operator.Operator
	scope   textobj.Scope
	charFor rune // which token is waiting in stateCharArg

	// visual widens the grammar: i/a introduce text objects without a
	// pending operator.
	visual bool

	keys []rune
}

func newPending() *pending {
	return &pending{keys: make([]rune, 0, 8)}
}

// reset clears all accumulated state.
func (p *pending) reset() {
	p.state = stateInitial
	p.count1, p.count2 = 0, 0
	p.has1, p.has2 = false, false
	p.reg = 0
	p.op = nil
	p.scope = textobj.Inner
	p.charFor = 0
	p.keys = p.keys[:0]
}

// isEmpty reports whether nothing has been accumulated.
func (p *pending) isEmpty() bool {
	return p.state == stateInitial && len(p.keys) == 0
}

// display returns the accumulated keys for a status line.
func (p *pending) display() string {
	return string(p.keys)
}

// consumedKeys returns how many key events the in-flight command has
// absorbed so far, including the one just fed.
func (p *pending) consumedKeys() int {
	return len(p.keys)
}

// combinedCount multiplies the two counts with overflow capping.
func (p *pending) combinedCount() int {
	if !p.has1 && !p.has2 {
		return 0
	}
	c1, c2 := p.count1, p.count2
	if c1 <= 0 {
		c1 = 1
	}
	if c2 <= 0 {
		c2 = 1
	}
	if c1 > math.MaxInt/c2 {
		return math.MaxInt / 10
	}
	return c1 * c2
}

// build assembles a parsed command from the accumulated state and
// resets the accumulator.
func (p *pending) build() parsed {
	cmd := parsed{
		count:  p.combinedCount(),
		reg:    p.reg,
		op:     p.op,
		scope:  p.scope,
		keylen: len(p.keys),
	}
	p.reset()
	return cmd
}

// simpleKeys are the single-key Normal mode commands the composer
// dispatches directly. Mode-switch keys are excluded; they are only
// honored with an empty pending command.
var simpleKeys = map[rune]bool{
	'x': true, 'X': true, 's': true, 'S': true,
	'D': true, 'C': true, 'Y': true,
	'p': true, 'P': true,
	'J': true, '~': true,
	'.': true, 'u': true,
}

// modeSwitchKeys enter another mode from Normal.
var modeSwitchKeys = map[rune]bool{
	'i': true, 'a': true, 'I': true, 'A': true,
	'o': true, 'O': true, 'R': true,
	'v': true, 'V': true,
	':': true,
}

// feed advances the accumulator by one rune.
func (p *pending) feed(r rune) (pendStatus, parsed) {
	p.keys = append(p.keys, r)

	switch p.state {
	case stateInitial:
		return p.feedInitial(r)
	case stateCount:
		return p.feedCount(r)
	case stateRegister:
		return p.feedRegister(r)
	case stateOperator:
		return p.feedOperator(r)
	case stateOperatorCount:
		return p.feedOperatorCount(r)
	case stateGPrefix:
		return p.feedGPrefix(r)
	case stateObjectScope:
		return p.feedObjectScope(r)
	case stateCharArg:
		return p.feedCharArg(r)
	default:
		p.reset()
		return pendInvalid, parsed{}
	}
}

func (p *pending) feedInitial(r rune) (pendStatus, parsed) {
	if r >= '1' && r <= '9' {
		p.state = stateCount
		p.count1 = int(r - '0')
		p.has1 = true
		return pendMore, parsed{}
	}
	return p.feedAfterCount(r)
}

func (p *pending) feedCount(r rune) (pendStatus, parsed) {
	if r >= '0' && r <= '9' {
		p.count1 = accumulate(p.count1, r)
		return pendMore, parsed{}
	}
	return p.feedAfterCount(r)
}

// feedAfterCount handles the token that follows an optional count in
// the initial position.
func (p *pending) feedAfterCount(r rune) (pendStatus, parsed) {
	switch {
	case r == '"':
		p.state = stateRegister
		return pendMore, parsed{}

	case r == 'g':
		p.state = stateGPrefix
		return pendMore, parsed{}

	case p.visual && textobj.IsPrefix(r):
		// In Visual mode i/a introduce text objects that expand the
		// selection.
		p.scope = textobj.ScopeFor(r)
		p.state = stateObjectScope
		return pendMore, parsed{}

	case operator.Get(r) != nil:
		if p.visual {
			// Operators are terminal in Visual mode; the selection is
			// the target.
			cmd := p.build()
			cmd.op = operator.Get(r)
			return pendComplete, cmd
		}
		p.op = operator.Get(r)
		p.state = stateOperator
		return pendMore, parsed{}

	case motion.IsCharSearch(r):
		p.charFor = r
		p.state = stateCharArg
		return pendMore, parsed{}

	case motion.Get(r) != nil:
		cmd := p.build()
		cmd.mot = motion.Get(r)
		return pendComplete, cmd

	case r == 'r' || r == 'q' || r == '@':
		p.charFor = r
		p.state = stateCharArg
		return pendMore, parsed{}

	case simpleKeys[r] || (p.visual && (r == 'o' || r == 'U')):
		cmd := p.build()
		cmd.simple = r
		return pendComplete, cmd

	case modeSwitchKeys[r]:
		// A count or register prefix is tolerated and ignored; an
		// operator prefix never reaches here.
		cmd := p.build()
		cmd.simple = r
		return pendComplete, cmd
	}

	p.reset()
	return pendInvalid, parsed{}
}

func (p *pending) feedRegister(r rune) (pendStatus, parsed) {
	if !register.IsValid(r) {
		p.reset()
		return pendInvalid, parsed{}
	}
	p.reg = r
	p.state = stateInitial
	return pendMore, parsed{}
}

func (p *pending) feedOperator(r rune) (pendStatus, parsed) {
	switch {
	case r >= '1' && r <= '9':
		p.state = stateOperatorCount
		p.count2 = int(r - '0')
		p.has2 = true
		return pendMore, parsed{}

	case p.op.Key == r:
		// Doubled operator key acts on whole lines.
		cmd := p.build()
		cmd.linewise = true
		return pendComplete, cmd

	case r == 'g':
		p.state = stateGPrefix
		return pendMore, parsed{}

	case textobj.IsPrefix(r):
		p.scope = textobj.ScopeFor(r)
		p.state = stateObjectScope
		return pendMore, parsed{}
	}
	return p.feedOperatorMotion(r)
}

func (p *pending) feedOperatorCount(r rune) (pendStatus, parsed) {
	switch {
	case r >= '0' && r <= '9':
		p.count2 = accumulate(p.count2, r)
		return pendMore, parsed{}

	case p.op.Key == r:
		// The linewise shorthand also closes after the second count, so
		// d2d is 2dd.
		cmd := p.build()
		cmd.linewise = true
		return pendComplete, cmd

	case r == 'g':
		p.state = stateGPrefix
		return pendMore, parsed{}

	case textobj.IsPrefix(r):
		p.scope = textobj.ScopeFor(r)
		p.state = stateObjectScope
		return pendMore, parsed{}
	}
	return p.feedOperatorMotion(r)
}

// feedOperatorMotion handles the terminal motion of an operator
// command.
func (p *pending) feedOperatorMotion(r rune) (pendStatus, parsed) {
	if motion.IsCharSearch(r) {
		p.charFor = r
		p.state = stateCharArg
		return pendMore, parsed{}
	}
	if m := motion.Get(r); m != nil {
		cmd := p.build()
		cmd.mot = m
		return pendComplete, cmd
	}
	p.reset()
	return pendInvalid, parsed{}
}

func (p *pending) feedGPrefix(r rune) (pendStatus, parsed) {
	if m := motion.GetG(r); m != nil {
		cmd := p.build()
		cmd.mot = m
		return pendComplete, cmd
	}
	if op := operator.GetG(r); op != nil && p.op == nil {
		if p.visual {
			cmd := p.build()
			cmd.op = op
			return pendComplete, cmd
		}
		p.op = op
		p.state = stateOperator
		return pendMore, parsed{}
	}
	p.reset()
	return pendInvalid, parsed{}
}

func (p *pending) feedObjectScope(r rune) (pendStatus, parsed) {
	obj := textobj.Get(r)
	if obj == nil {
		p.reset()
		return pendInvalid, parsed{}
	}
	cmd := p.build()
	cmd.object = obj
	return pendComplete, cmd
}

func (p *pending) feedCharArg(r rune) (pendStatus, parsed) {
	waiting := p.charFor
	switch waiting {
	case 'f', 'F', 't', 'T':
		cmd := p.build()
		cmd.mot = motion.Get(waiting)
		cmd.charArg = r
		return pendComplete, cmd

	case 'r', 'q', '@':
		cmd := p.build()
		cmd.simple = waiting
		cmd.charArg = r
		return pendComplete, cmd
	}
	p.reset()
	return pendInvalid, parsed{}
}

// accumulate appends a digit with overflow capping.
func accumulate(value int, r rune) int {
	digit := int(r - '0')
	if value > (math.MaxInt-digit)/10 {
		return math.MaxInt / 10
	}
	return value*10 + digit
}
