/* Package intcode implements a resumable Intcode virtual machine.

Intcode programs are flat sequences of signed integers: each instruction
word encodes a two-digit opcode in its low decimal digits and one
addressing-mode digit per operand above them.  Operands are read in one
of three modes -- position (the word is an address), immediate (the word
is the value), or relative (the word is an offset from the machine's
relative base register).

The machine's entire interface to the outside world is a pair of FIFO
integer queues.  A run never blocks: executing an input instruction
against an empty queue suspends the machine with the instruction pointer
still at that instruction, and Run returns NeedInput.  Appending more
input and calling Run again resumes exactly where it left off, which is
what lets callers wire several machines into pipelines and feedback
rings, or drive one machine a scheduling quantum at a time.

Memory is a linear array of int64 cells, lazily allocated in pages so
that a program may store far past its own length without each machine
paying for a large up-front allocation.  Negative addresses, and
addresses at or past the configured limit, are faults.
*/
package intcode
