package domain

import (
	"strconv"
	"time"
)

// LineItem is one row in the cart. Identity is the composite
// productID/variantID/size key; two items with the same key never
// coexist, adds merge into the existing row instead.
type LineItem struct {
	ProductID     int64     `bson:"product_id" json:"productId"`
	VariantID     string    `bson:"variant_id,omitempty" json:"variantId,omitempty"`
	Size          Size      `bson:"size,omitempty" json:"size,omitempty"`
	Name          string    `bson:"name" json:"name"`
	Price         float64   `bson:"price" json:"price"` // post-discount unit price
	OriginalPrice float64   `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	Discount      float64   `bson:"discount,omitempty" json:"discount,omitempty"`
	Qty           int       `bson:"qty" json:"qty"`
	MaxQty        int       `bson:"max_qty,omitempty" json:"maxQty,omitempty"` // 0 means unknown
	ShopID        int64     `bson:"shop_id" json:"shopId"`
	ShopName      string    `bson:"shop_name,omitempty" json:"shopName,omitempty"`
	ImageURL      string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	AddedAt       time.Time `bson:"added_at" json:"addedAt"`
}

// Key returns the composite identity of the item. The same derivation
// is used for insertion, lookup, update and removal.
func (it LineItem) Key() string {
	return ItemKey(it.ProductID, it.VariantID, it.Size)
}

// ItemKey derives the composite cart key. Absent variant and size
// normalize to the empty string.
func ItemKey(productID int64, variantID string, size Size) string {
	return strconv.FormatInt(productID, 10) + "::" + variantID + "::" + string(size)
}

// Cart holds a user's line items. All mutation goes through the named
// operations below; callers never splice Items directly.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    int64      `bson:"user_id" json:"userId"`
	Items     []LineItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Add merges the item into the cart. A row with the same composite key
// absorbs the incoming quantity, clamped to its max when known; the
// max hint itself describes availability, so an existing row without
// one adopts the incoming hint instead of summing it. New keys insert
// with quantity clamped the same way.
func (c *Cart) Add(item LineItem) {
	if item.Qty <= 0 {
		item.Qty = 1
	}
	key := item.Key()
	for i := range c.Items {
		if c.Items[i].Key() != key {
			continue
		}
		existing := &c.Items[i]
		if existing.MaxQty == 0 {
			existing.MaxQty = item.MaxQty
		}
		existing.Qty += item.Qty
		if existing.MaxQty > 0 && existing.Qty > existing.MaxQty {
			existing.Qty = existing.MaxQty
		}
		return
	}
	if item.MaxQty > 0 && item.Qty > item.MaxQty {
		item.Qty = item.MaxQty
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the row matching the key. Missing keys are a no-op.
func (c *Cart) Remove(productID int64, variantID string, size Size) {
	key := ItemKey(productID, variantID, size)
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQty overwrites the quantity of the row matching the key. A
// quantity of zero or less removes the row; positive quantities clamp
// to the row's max when known. Missing keys are a no-op.
func (c *Cart) SetQty(productID int64, variantID string, size Size, qty int) {
	if qty <= 0 {
		c.Remove(productID, variantID, size)
		return
	}
	key := ItemKey(productID, variantID, size)
	for i := range c.Items {
		if c.Items[i].Key() != key {
			continue
		}
		if c.Items[i].MaxQty > 0 && qty > c.Items[i].MaxQty {
			qty = c.Items[i].MaxQty
		}
		c.Items[i].Qty = qty
		return
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// Clone returns a deep copy. A cart that crosses a goroutine or cache
// boundary must be cloned first; the original and the copy never share
// item storage.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = append([]LineItem(nil), c.Items...)
	return &cp
}

// Find returns the row matching the key, or nil.
func (c *Cart) Find(productID int64, variantID string, size Size) *LineItem {
	key := ItemKey(productID, variantID, size)
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return &c.Items[i]
		}
	}
	return nil
}

// Count is the total unit count across all rows.
func (c *Cart) Count() int {
	total := 0
	for _, it := range c.Items {
		total += it.Qty
	}
	return total
}

// Subtotal is the sum of price times quantity across all rows,
// recomputed fresh on every call.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// ShopIDs lists the distinct shops represented in the cart, in first
// appearance order.
func (c *Cart) ShopIDs() []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, it := range c.Items {
		if it.ShopID == 0 || seen[it.ShopID] {
			continue
		}
		seen[it.ShopID] = true
		ids = append(ids, it.ShopID)
	}
	return ids
}

// ShopGroup is the slice of a cart belonging to one seller.
type ShopGroup struct {
	ShopID   int64
	ShopName string
	Items    []LineItem
}

// Amount is the group's order total.
func (g ShopGroup) Amount() float64 {
	total := 0.0
	for _, it := range g.Items {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// GroupByShop partitions the cart into one group per seller, preserving
// item order within each group and group order by first appearance.
func (c *Cart) GroupByShop() []ShopGroup {
	index := make(map[int64]int)
	var groups []ShopGroup
	for _, it := range c.Items {
		i, ok := index[it.ShopID]
		if !ok {
			i = len(groups)
			index[it.ShopID] = i
			groups = append(groups, ShopGroup{ShopID: it.ShopID, ShopName: it.ShopName})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
