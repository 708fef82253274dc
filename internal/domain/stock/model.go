package stock

import "github.com/Spok95/kit-inventory/internal/domain/errs"

const (
	DefaultQuantity    = 100
	DefaultDangerLevel = 30
)

// DefaultNames - позиции, которыми засевается пустой склад.
var DefaultNames = []string{
	"bag", "pen", "diary", "bottle",
	"tshirt_s", "tshirt_m", "tshirt_l", "tshirt_xl", "tshirt_xxl", "tshirt_xxxl",
}

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"item_name" validate:"notblank,max=100"`
	Quantity    int    `json:"quantity" validate:"gte=0,lte=2147483647"`
	DangerLevel int    `json:"danger_level" validate:"gte=0,lte=2147483647"`
}

// Low: остаток на уровне danger level или ниже.
func (i Item) Low() bool { return i.Quantity <= i.DangerLevel }

// LowStock - элемент списка low_stock_items.
type LowStock struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	DangerLevel int    `json:"danger_level"`
}

func LowStockOf(items []Item) []LowStock {
	out := make([]LowStock, 0, len(items))
	for _, it := range items {
		out = append(out, LowStock{Type: "item", Name: it.Name, Quantity: it.Quantity, DangerLevel: it.DangerLevel})
	}
	return out
}

// Defaults строит начальный склад.
func Defaults(quantity, dangerLevel int) []Item {
	out := make([]Item, 0, len(DefaultNames))
	for _, n := range DefaultNames {
		out = append(out, Item{Name: n, Quantity: quantity, DangerLevel: dangerLevel})
	}
	return out
}

// Update - частичное изменение позиции, nil-поля не трогаем.
type Update struct {
	Quantity    *int `json:"quantity" validate:"omitnil,gte=0,lte=2147483647"`
	DangerLevel *int `json:"danger_level" validate:"omitnil,gte=0,lte=2147483647"`
}

func (u Update) Validate() error {
	if u.Quantity == nil && u.DangerLevel == nil {
		return errs.InvalidArgument("no valid fields to update")
	}
	return check(u)
}

func (u Update) Apply(it *Item) {
	if u.Quantity != nil {
		it.Quantity = *u.Quantity
	}
	if u.DangerLevel != nil {
		it.DangerLevel = *u.DangerLevel
	}
}

// Clamp списывает delta выданных единиц из current. Ниже нуля остаток не уходит:
// всё, что съел ноль, возвращается как deficit и больше нигде не учитывается.
// Отрицательная delta - возврат на склад, он не ограничивается.
func Clamp(current, delta int) (next, deficit int) {
	next = current - delta
	if next < 0 {
		return 0, -next
	}
	return next, 0
}
