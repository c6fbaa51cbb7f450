package domain

type Diet string

const (
	DietAll           Diet = "all"
	DietVegetarian    Diet = "veg"
	DietNonVegetarian Diet = "non-veg"
)

// FilterMenu keeps the items matching diet. Unknown diets behave like DietAll.
func FilterMenu(items []MenuItem, diet Diet) []MenuItem {
	filtered := make([]MenuItem, 0, len(items))
	for _, item := range items {
		switch diet {
		case DietVegetarian:
			if !item.IsVegetarian {
				continue
			}
		case DietNonVegetarian:
			if item.IsVegetarian {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func CountByDiet(items []MenuItem) (veg, nonVeg int) {
	for _, item := range items {
		if item.IsVegetarian {
			veg++
		} else {
			nonVeg++
		}
	}
	return veg, nonVeg
}
