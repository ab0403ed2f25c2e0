package service

import (
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
)

// planOrders expands a menu into one PENDING order per served day and
// moment of the formule. Blank dishes are skipped; the dish text itself is
// copied as written.
func planOrders(sub *domain.Subscription, menu *menudomain.Menu, recipient *authdomain.User, meals config.MealsConfig, newID func() snowflake.ID) []orderdomain.Order {
	moments := sub.Formule.Moments()
	point := deliveryPoint(recipient.PickupPoint)

	orders := make([]orderdomain.Order, 0, len(menu.Items)*len(moments))
	for _, item := range menu.Items {
		for _, moment := range moments {
			midi := moment == orderdomain.MomentMidi
			if item.Dish(midi) == "" {
				continue
			}
			repas := item.Soir
			h, m := meals.SoirClock()
			if midi {
				repas = item.Midi
				h, m = meals.MidiClock()
			}
			orders = append(orders, orderdomain.Order{
				ID:             newID(),
				SubscriptionID: sub.ID,
				UserID:         sub.UserID,
				ChefID:         sub.ChefID,
				Date:           meals.AtClock(item.Date, h, m).UTC(),
				Moment:         moment,
				Repas:          repas,
				DeliveryPoint:  point,
				Statut:         orderdomain.StatusPending,
			})
		}
	}
	return orders
}

func deliveryPoint(p authdomain.PickupPoint) orderdomain.DeliveryPoint {
	if p.IsZero() {
		return orderdomain.DeliveryPoint{}
	}
	return orderdomain.DeliveryPoint{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Address:   p.Address,
	}
}
