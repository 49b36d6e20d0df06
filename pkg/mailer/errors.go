package mailer

import "errors"

// Address validation.
var (
	// ErrInvalidAddress indicates a malformed email address.
	ErrInvalidAddress = errors.New("invalid email address")
)

// Message building.
var (
	// ErrBuildFailed wraps every failure that prevents a message from being assembled.
	ErrBuildFailed = errors.New("failed to build message")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrAttachment indicates an attachment file could not be read.
	ErrAttachment = errors.New("failed to read attachment")
)

// Template rendering.
var (
	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrNoRenderer indicates a templated send was requested without a renderer.
	ErrNoRenderer = errors.New("no template renderer configured")
)

// Delivery.
var (
	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrAuth indicates the server refused the account credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrConnection indicates the server could not be reached.
	ErrConnection = errors.New("connection failed")

	// ErrRejected indicates the server or provider rejected the message.
	ErrRejected = errors.New("message rejected")

	// ErrAwaitTimeout is returned by Future.AwaitWithTimeout when the send is still running.
	ErrAwaitTimeout = errors.New("timed out waiting for send to complete")
)

// Configuration.
var (
	// ErrInvalidConfig indicates a missing or malformed configuration value.
	ErrInvalidConfig = errors.New("invalid email configuration")
)
