package models

// User documents are written outside this service and carry no fixed schema.
type User = Document
