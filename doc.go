/* Package robotforth: a small FORTH for robot agents

Robot scripts are written in a FORTH dialect: whitespace separated tokens
operating on a single stack of values. A script defines words, and the word
named play is run once for every turn its agent takes. Words compile into a
tree of operations, so a run never re-reads source text; calling one user word
from another shares the callee's compiled body.

Values

Every stack slot, variable, and message holds one of four kinds of value: an
integer, a boolean (true or false, in any letter case), a string written as
."like this", or a variable reference. Strings run from their opening ." to
the first token ending in a double quote, keeping any whitespace between.
Comments do the same with ( and ).

Equality compares values of the same kind; comparing an integer with a
boolean, say, is a fault rather than false.

Definitions

	variable name       declare a variable bound to 0; a following ; is optional
	: name ... ;        define a word
	if ... else ... then
	if ... then         pop a boolean, run one branch
	begin ... until     run the body, pop a boolean, repeat while it is true
	end start do ... loop
	                    run the body for I from start to end inclusive
	leave               exit the nearest enclosing loop

Note that until repeats while its guard is TRUE, the opposite of most FORTHs.

Within a counted loop the word I pushes the current index; loops restore the
prior index when they end, so nested loops each see their own.

A word is resolved when it is compiled: first as a variable, then as a
builtin, then as a previously defined word. Words may therefore not call
themselves, nor any word defined later in the script.

Preludes

Top level code outside of any definition is a prelude. A prelude runs once,
as soon as it has been read, with no agent attached: agent and status words
fault, which fails the build. Variables set by preludes become every new
instance's initial bindings; values left on the stack are dropped.

	variable range 3 range !

Builtins

Binary words take their left operand from deeper in the stack, so
"7 3 -" leaves 4 and "7 2 /mod" leaves 1 3 (remainder, then quotient).

	stack       drop pop dup swap rot
	arithmetic  + - * /mod
	comparison  < <= > >= = <>
	logic       and or invert
	variable    ! ( value var -- ) and ? ( var -- value )
	utility     . (print a line) random ( n -- [0,n] )
	agent       move! move turn! shoot! scan! check! identify!
	status      attack health healthLeft moves movesLeft range team type
	mail        send! ( kind value -- sent ) recv! ( kind -- value ) mesg? ( kind -- waiting )

Every instance has one mailbox per agent kind, holding up to six messages
from senders of that kind. send! hands a value to the agent's listener
addressed to agents of the given kind, pushing whether it was accepted;
recv! and mesg? read the instance's own mailbox for messages sent by agents
of the given kind.

Running

A Builder compiles scripts into Programs; a Program makes Instances, each
with its own State. Start runs an instance's play word on its own goroutine,
reporting the end of the run to the listener (Interrupted on a fault, then
always Finished) and sending one Result. Any number of instances may run at
once, but each instance runs at most once at a time.
*/
package robotforth
