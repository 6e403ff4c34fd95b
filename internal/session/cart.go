package session

import (
	"github.com/halotrubus/internal/models"
)

// CartLineItem 购物车行项目，同一商品只占一行
type CartLineItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal 行小计
func (i CartLineItem) Subtotal() models.Money {
	return i.Product.Price.MulInt(i.Quantity)
}

// Cart 购物车，按商品首次加入的顺序保存
type Cart struct {
	items []CartLineItem
}

// Add 加入商品，已存在则累加数量；数量小于 1 按 1 处理
func (c *Cart) Add(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if idx := c.indexOf(product.ID); idx >= 0 {
		c.items[idx].Quantity += quantity
		return
	}
	c.items = append(c.items, CartLineItem{Product: product, Quantity: quantity})
}

// UpdateQuantity 设置绝对数量，小于等于 0 时移除；返回是否命中
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	if quantity <= 0 {
		c.removeAt(idx)
		return true
	}
	c.items[idx].Quantity = quantity
	return true
}

// Remove 移除商品；返回是否命中
func (c *Cart) Remove(productID string) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.removeAt(idx)
	return true
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.items = nil
}

// Items 返回行项目副本
func (c *Cart) Items() []CartLineItem {
	out := make([]CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len 行数
func (c *Cart) Len() int {
	return len(c.items)
}

// ItemCount 商品总件数，每次读取时重新求和
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total 购物车总价
func (c *Cart) Total() models.Money {
	total := models.NewMoney(0)
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Quantity 指定商品的数量，不存在返回 0
func (c *Cart) Quantity(productID string) int {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.items[idx].Quantity
	}
	return 0
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if len(c.items) == 0 {
		c.items = nil
	}
}
