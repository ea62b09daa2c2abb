package quote

import (
	"errors"
	"fmt"
	"strings"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"
)

// TireSize holds the catalog dimensions of a tire, e.g. 205/55 R16.
// Any part may be empty for products that are not tires.
type TireSize struct {
	Width    string
	Profile  string
	Diameter string
}

// Label renders the size the way it is printed on a tire sidewall.
func (s TireSize) Label() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(s.Width))
	if p := strings.TrimSpace(s.Profile); p != "" {
		if b.Len() > 0 {
			b.WriteString("/")
		}
		b.WriteString(p)
	}
	if d := strings.TrimSpace(s.Diameter); d != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("R")
		b.WriteString(strings.TrimPrefix(strings.ToUpper(d), "R"))
	}
	return b.String()
}

// Item is a line of a quote request. Catalog attributes are copied when the
// line is created so that later catalog changes do not alter the quote.
type Item struct {
	productID kernel.UUID
	name      string
	brand     string
	size      TireSize
	quantity  int
	unitPrice kernel.Money
}

func NewItem(
	productID kernel.UUID,
	name, brand string,
	size TireSize,
	quantity int,
	unitPrice kernel.Money,
) (Item, error) {
	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		name:      strings.TrimSpace(name),
		brand:     strings.TrimSpace(brand),
		size:      size,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) Name() string            { return i.name }
func (i Item) Brand() string           { return i.brand }
func (i Item) Size() TireSize          { return i.size }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// LineTotal is quantity × unit price.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

// Subtotal sums the line totals of items.
func Subtotal(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
