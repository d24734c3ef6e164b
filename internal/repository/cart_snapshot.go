package repository

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"cart_service/internal/domain"
)

// CartRecord is one persisted cart line: `<productId>,<quantity>`.
type CartRecord struct {
	ProductID string
	Quantity  int
}

// CartSnapshotCodec encodes and decodes the cart snapshot text format: one
// record per line, UTF-8, newline-terminated, no header. The codec has no
// pricing knowledge; byte storage and path resolution belong to the caller.
type CartSnapshotCodec struct {
	catalog domain.CatalogRepository
	log     *logrus.Logger
}

func NewCartSnapshotCodec(catalog domain.CatalogRepository, logger *logrus.Logger) *CartSnapshotCodec {
	return &CartSnapshotCodec{catalog: catalog, log: logger}
}

// Encode writes one record per line. The writer performs a full replace of
// prior content and emits no quoting or escaping.
func (c *CartSnapshotCodec) Encode(records []CartRecord) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		fmt.Fprintf(&buf, "%s,%d\n", r.ProductID, r.Quantity)
	}
	return buf.Bytes()
}

// Decode parses a snapshot tolerantly. A record with an unknown product id,
// a non-positive or unparsable quantity, or the wrong shape is skipped and
// counted, never fatal; the records that did parse are always returned.
// Blank lines are ignored without counting.
func (c *CartSnapshotCodec) Decode(data []byte) (records []CartRecord, skipped int) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			c.log.Warnf("Skipping malformed cart record %q", line)
			skipped++
			continue
		}
		id := strings.TrimSpace(parts[0])
		qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || qty <= 0 {
			c.log.Warnf("Skipping cart record %q: invalid quantity", line)
			skipped++
			continue
		}
		if _, err := c.catalog.FindByID(id); err != nil {
			c.log.Warnf("Skipping cart record %q: %v", line, err)
			skipped++
			continue
		}
		records = append(records, CartRecord{ProductID: id, Quantity: qty})
	}
	return records, skipped
}

// RecordsFromCart snapshots the cart lines in display order.
func RecordsFromCart(cart *domain.Cart) []CartRecord {
	lines := cart.Lines()
	records := make([]CartRecord, 0, len(lines))
	for _, l := range lines {
		records = append(records, CartRecord{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return records
}
