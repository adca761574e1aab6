// Package proof stores the payment receipts buyers attach to orders.
// Each proof is a database row pointing at a blob in object storage.
package proof

import "time"

type Proof struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Retention is how long receipts are kept before the storage lifecycle
// rule removes them.
const Retention = 7 * 24 * time.Hour

func expiry(created time.Time) time.Time { return created.Add(Retention) }
