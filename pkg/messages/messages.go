// Package messages centralizes the console and log message literals so the
// command output and the logs stay consistent.
package messages

// Console messages of make:test-model. The format verbs take the model
// name, followed by the path for MsgAlreadyExists.
const (
	MsgGenerating    = "Generating test file for %s..."
	MsgModelNotFound = "Model %s not found!"
	MsgAlreadyExists = "Test file for %s already exists at %s!"
	MsgCreated       = "Test file created successfully at:"
)

// Log messages.
const (
	MsgResolvedModel        = "resolved model"
	MsgSkippingRule         = "skipping rule"
	MsgTestFileWritten      = "test file written"
	MsgUniqueIndexesFailed  = "could not read unique indexes"
	MsgUniqueFromDatabase   = "unique columns from database"
	MsgUniqueLookupDisabled = "unique index lookup disabled"
	MsgNonStringFillable    = "fillable field is not a string; its sample value will not compile"
	MsgConfigFound          = "configuration file found"
	MsgConfigNotFound       = "configuration file not found"
	MsgConfigExists         = "configuration file already exists"
	MsgConfigGenerated      = "configuration file generated"
)
