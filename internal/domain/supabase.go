package domain

import (
	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseClient wraps access to the Supabase project backing archive storage
type SupabaseClient interface {
	Initialize() error
	Storage() *storage_go.Client
}
