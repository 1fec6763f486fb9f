package errors

// ErrorCode identifies a filesystem error condition.
// Codes use the POSIX errno names expected by filesystem consumers.
type ErrorCode string

const (
	// Entry errors.

	// CodeExist indicates the path already exists.
	CodeExist ErrorCode = "EEXIST"

	// CodeNotExist indicates the path, or one of its parents, does not exist.
	CodeNotExist ErrorCode = "ENOENT"

	// CodeNotDir indicates a directory operation was attempted on a file.
	CodeNotDir ErrorCode = "ENOTDIR"

	// CodeIsDir indicates a file operation was attempted on a directory.
	CodeIsDir ErrorCode = "EISDIR"

	// CodeNotEmpty indicates a directory still has entries.
	CodeNotEmpty ErrorCode = "ENOTEMPTY"

	// Argument errors.

	// CodeInvalid indicates an invalid argument such as an unsupported encoding.
	CodeInvalid ErrorCode = "EINVAL"

	// CodeNotSupported indicates the store cannot perform the operation at all.
	CodeNotSupported ErrorCode = "ENOTSUP"

	// CodePermission indicates the caller lacks credentials or access.
	CodePermission ErrorCode = "EACCES"

	// Repository errors.

	// CodeConflict indicates the repository is in a state that forbids the
	// operation, such as a dirty worktree or an empty commit.
	CodeConflict ErrorCode = "ECONFLICT"

	// Transport errors.

	// CodeTimedOut indicates the operation did not finish before its deadline.
	CodeTimedOut ErrorCode = "ETIMEDOUT"

	// CodeIO indicates the underlying store failed for a reason without a
	// more specific code.
	CodeIO ErrorCode = "EIO"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
