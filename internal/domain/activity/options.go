package activity

// ListOptions provides filtering options for listing history entries.
type ListOptions struct {
	FaultID *int64
	Type    *Type
	Limit   int
	Offset  int
}
