/*
Package errors implements the error kinds returned by the escrow protocol.

Every error returned by the protocol packages wraps exactly one of the root
errors declared here, so a caller can always tell what went wrong:

	ErrMalformed     a record or instruction buffer has the wrong shape
	ErrUnauthorized  the signer does not hold the role the instruction needs
	ErrPrecondition  the transition is not legal from the current record state
	ErrNotFound      the target record does not exist
	ErrClosed        the target record is already closed

Use ErrXyz.New and ErrXyz.Newf to create an instance, errors.Wrap to add
context and ErrXyz.Is to test for a kind. A stack trace is attached at the
point of creation; print an error with %+v to see it.

Code stands for the numeric code of the root error. It is stable and is what
an executor reports to a remote client.
*/
package errors
