package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const orderIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewOrderID returns ORDER_<unix millis>_<9 base36 chars>. Uniqueness is
// probabilistic; the unique index on payment_orders.order_id is the backstop.
func NewOrderID(now time.Time) string {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(orderIDAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		suffix[i] = orderIDAlphabet[n.Int64()]
	}

	return "ORDER_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix)
}
