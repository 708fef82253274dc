package employees

import "time"

// Item - вид выдаваемого сотруднику комплекта. Значение совпадает с именем позиции склада.
type Item string

const (
	Bag        Item = "bag"
	Pen        Item = "pen"
	Diary      Item = "diary"
	Bottle     Item = "bottle"
	TshirtS    Item = "tshirt_s"
	TshirtM    Item = "tshirt_m"
	TshirtL    Item = "tshirt_l"
	TshirtXL   Item = "tshirt_xl"
	TshirtXXL  Item = "tshirt_xxl"
	TshirtXXXL Item = "tshirt_xxxl"
)

var Items = []Item{Bag, Pen, Diary, Bottle, TshirtS, TshirtM, TshirtL, TshirtXL, TshirtXXL, TshirtXXXL}

// Field - имя JSON-поля и колонки с выданным количеством.
func (i Item) Field() string { return string(i) + "_quantity" }

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Правила полей ниже повторяют ширину колонок в миграции и тип INTEGER.
type Employee struct {
	EmployeeID     string `json:"employee_id" validate:"notblank,max=50"`
	FirstName      string `json:"first_name" validate:"notblank,max=100"`
	LastName       string `json:"last_name" validate:"notblank,max=100"`
	EmergencyNo    string `json:"emergency_no" validate:"notblank,max=20"`
	BloodGroup     string `json:"blood_group" validate:"notblank,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DepartmentName string `json:"department_name" validate:"notblank,max=100"`

	BagQuantity        int `json:"bag_quantity" validate:"gte=0,lte=2147483647"`
	PenQuantity        int `json:"pen_quantity" validate:"gte=0,lte=2147483647"`
	DiaryQuantity      int `json:"diary_quantity" validate:"gte=0,lte=2147483647"`
	BottleQuantity     int `json:"bottle_quantity" validate:"gte=0,lte=2147483647"`
	TshirtSQuantity    int `json:"tshirt_s_quantity" validate:"gte=0,lte=2147483647"`
	TshirtMQuantity    int `json:"tshirt_m_quantity" validate:"gte=0,lte=2147483647"`
	TshirtLQuantity    int `json:"tshirt_l_quantity" validate:"gte=0,lte=2147483647"`
	TshirtXLQuantity   int `json:"tshirt_xl_quantity" validate:"gte=0,lte=2147483647"`
	TshirtXXLQuantity  int `json:"tshirt_xxl_quantity" validate:"gte=0,lte=2147483647"`
	TshirtXXXLQuantity int `json:"tshirt_xxxl_quantity" validate:"gte=0,lte=2147483647"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *Employee) slot(it Item) *int {
	switch it {
	case Bag:
		return &e.BagQuantity
	case Pen:
		return &e.PenQuantity
	case Diary:
		return &e.DiaryQuantity
	case Bottle:
		return &e.BottleQuantity
	case TshirtS:
		return &e.TshirtSQuantity
	case TshirtM:
		return &e.TshirtMQuantity
	case TshirtL:
		return &e.TshirtLQuantity
	case TshirtXL:
		return &e.TshirtXLQuantity
	case TshirtXXL:
		return &e.TshirtXXLQuantity
	case TshirtXXXL:
		return &e.TshirtXXXLQuantity
	}
	return nil
}

func (e *Employee) Issued(it Item) int {
	if p := e.slot(it); p != nil {
		return *p
	}
	return 0
}

func (e *Employee) SetIssued(it Item, n int) {
	if p := e.slot(it); p != nil {
		*p = n
	}
}

// Issuance: имя позиции склада -> сколько выдано сотруднику.
func (e *Employee) Issuance() map[string]int {
	out := make(map[string]int, len(Items))
	for _, it := range Items {
		out[string(it)] = e.Issued(it)
	}
	return out
}

// Returns - выдача с обратным знаком: всё возвращается на склад.
func (e *Employee) Returns() map[string]int {
	out := e.Issuance()
	for k, v := range out {
		out[k] = -v
	}
	return out
}

// Update - поля, пришедшие в частичном изменении. nil не трогаем.
type Update struct {
	EmployeeID     *string `json:"employee_id" validate:"omitnil,notblank,max=50"`
	FirstName      *string `json:"first_name" validate:"omitnil,notblank,max=100"`
	LastName       *string `json:"last_name" validate:"omitnil,notblank,max=100"`
	EmergencyNo    *string `json:"emergency_no" validate:"omitnil,notblank,max=20"`
	BloodGroup     *string `json:"blood_group" validate:"omitnil,notblank,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	DepartmentName *string `json:"department_name" validate:"omitnil,notblank,max=100"`

	Quantities map[Item]*int `json:"-" validate:"-"`
}

func (u *Update) SetQuantity(it Item, n int) {
	if u.Quantities == nil {
		u.Quantities = make(map[Item]*int, len(Items))
	}
	u.Quantities[it] = &n
}

func (u Update) quantity(it Item) *int { return u.Quantities[it] }

func (u Update) Empty() bool {
	if u.EmployeeID != nil || u.FirstName != nil || u.LastName != nil ||
		u.EmergencyNo != nil || u.BloodGroup != nil || u.DepartmentName != nil {
		return false
	}
	for _, it := range Items {
		if u.quantity(it) != nil {
			return false
		}
	}
	return true
}

// Apply записывает пришедшие поля в e и возвращает new-old по каждому пришедшему количеству
// с ключом по имени позиции. Не пришедшие поля дельты не дают.
func (u Update) Apply(e *Employee) map[string]int {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.FirstName, u.FirstName)
	set(&e.LastName, u.LastName)
	set(&e.EmergencyNo, u.EmergencyNo)
	set(&e.BloodGroup, u.BloodGroup)
	set(&e.DepartmentName, u.DepartmentName)

	deltas := map[string]int{}
	for _, it := range Items {
		n := u.quantity(it)
		if n == nil {
			continue
		}
		deltas[string(it)] = *n - e.Issued(it)
		e.SetIssued(it, *n)
	}
	return deltas
}

type Stats struct {
	TotalEmployees         int            `json:"total_employees"`
	BagsDistributed        int            `json:"bags_distributed"`
	PensDistributed        int            `json:"pens_distributed"`
	DiariesDistributed     int            `json:"diaries_distributed"`
	BottlesDistributed     int            `json:"bottles_distributed"`
	TshirtsDistributed     int            `json:"tshirts_distributed"`
	TshirtSizesDistributed map[string]int `json:"tshirt_sizes_distributed"`
}

// TshirtSizes: подпись размера в статистике -> позиция.
var TshirtSizes = []struct {
	Label string
	Item  Item
}{
	{"S", TshirtS}, {"M", TshirtM}, {"L", TshirtL},
	{"XL", TshirtXL}, {"XXL", TshirtXXL}, {"XXXL", TshirtXXXL},
}

// NewStats собирает Stats из сумм по позициям; отсутствующие считаются нулём.
func NewStats(total int, sums map[Item]int) Stats {
	s := Stats{
		TotalEmployees:         total,
		BagsDistributed:        sums[Bag],
		PensDistributed:        sums[Pen],
		DiariesDistributed:     sums[Diary],
		BottlesDistributed:     sums[Bottle],
		TshirtSizesDistributed: make(map[string]int, len(TshirtSizes)),
	}
	for _, sz := range TshirtSizes {
		s.TshirtSizesDistributed[sz.Label] = sums[sz.Item]
		s.TshirtsDistributed += sums[sz.Item]
	}
	return s
}

func Tally(list []Employee) Stats {
	sums := make(map[Item]int, len(Items))
	for i := range list {
		for _, it := range Items {
			sums[it] += list[i].Issued(it)
		}
	}
	return NewStats(len(list), sums)
}
