package locations

import "sync"

// Road distances in kilometres from the Lagos hub.
var nigeriaRegions = []Region{
	{Name: "Abia", BaseDistance: 620, Settlements: []Settlement{
		{Name: "Umuahia", Distance: 620},
		{Name: "Aba", Distance: 600},
	}},
	{Name: "Adamawa", BaseDistance: 1500, Settlements: []Settlement{
		{Name: "Yola", Distance: 1500},
		{Name: "Mubi", Distance: 1650},
	}},
	{Name: "Akwa Ibom", BaseDistance: 750, Settlements: []Settlement{
		{Name: "Uyo", Distance: 750},
		{Name: "Eket", Distance: 780},
	}},
	{Name: "Anambra", BaseDistance: 480, Settlements: []Settlement{
		{Name: "Awka", Distance: 500},
		{Name: "Onitsha", Distance: 460},
		{Name: "Nnewi", Distance: 490},
	}},
	{Name: "Bauchi", BaseDistance: 1150, Settlements: []Settlement{
		{Name: "Bauchi", Distance: 1150},
	}},
	{Name: "Bayelsa", BaseDistance: 620, Settlements: []Settlement{
		{Name: "Yenagoa", Distance: 620},
	}},
	{Name: "Benue", BaseDistance: 800, Settlements: []Settlement{
		{Name: "Makurdi", Distance: 800},
		{Name: "Gboko", Distance: 850},
	}},
	{Name: "Borno", BaseDistance: 1600, Settlements: []Settlement{
		{Name: "Maiduguri", Distance: 1600},
	}},
	{Name: "Cross River", BaseDistance: 850, Settlements: []Settlement{
		{Name: "Calabar", Distance: 850},
	}},
	{Name: "Delta", BaseDistance: 450, Settlements: []Settlement{
		{Name: "Asaba", Distance: 450},
		{Name: "Warri", Distance: 430},
	}},
	{Name: "Ebonyi", BaseDistance: 650, Settlements: []Settlement{
		{Name: "Abakaliki", Distance: 650},
	}},
	{Name: "Edo", BaseDistance: 320, Settlements: []Settlement{
		{Name: "Benin City", Distance: 320},
		{Name: "Auchi", Distance: 430},
	}},
	{Name: "Ekiti", BaseDistance: 330, Settlements: []Settlement{
		{Name: "Ado Ekiti", Distance: 330},
	}},
	{Name: "Enugu", BaseDistance: 560, Settlements: []Settlement{
		{Name: "Enugu", Distance: 560},
		{Name: "Nsukka", Distance: 610},
	}},
	{Name: "FCT", BaseDistance: 760, Settlements: []Settlement{
		{Name: "Abuja", Distance: 760},
		{Name: "Gwagwalada", Distance: 720},
	}},
	{Name: "Gombe", BaseDistance: 1250, Settlements: []Settlement{
		{Name: "Gombe", Distance: 1250},
	}},
	{Name: "Imo", BaseDistance: 560, Settlements: []Settlement{
		{Name: "Owerri", Distance: 560},
	}},
	{Name: "Jigawa", BaseDistance: 1150, Settlements: []Settlement{
		{Name: "Dutse", Distance: 1150},
	}},
	{Name: "Kaduna", BaseDistance: 850, Settlements: []Settlement{
		{Name: "Kaduna", Distance: 850},
		{Name: "Zaria", Distance: 930},
	}},
	{Name: "Kano", BaseDistance: 1050},
	{Name: "Katsina", BaseDistance: 1100, Settlements: []Settlement{
		{Name: "Katsina", Distance: 1100},
	}},
	{Name: "Kebbi", BaseDistance: 1050, Settlements: []Settlement{
		{Name: "Birnin Kebbi", Distance: 1050},
	}},
	{Name: "Kogi", BaseDistance: 520, Settlements: []Settlement{
		{Name: "Lokoja", Distance: 520},
	}},
	{Name: "Kwara", BaseDistance: 300, Settlements: []Settlement{
		{Name: "Ilorin", Distance: 300},
	}},
	{Name: "Lagos", BaseDistance: 0, Settlements: []Settlement{
		{Name: "Victoria Island", Distance: 15},
		{Name: "Ikoyi", Distance: 15},
		{Name: "Ikeja", Distance: 20},
		{Name: "Surulere", Distance: 12},
		{Name: "Yaba", Distance: 10},
		{Name: "Lekki", Distance: 25},
		{Name: "Ajah", Distance: 35},
		{Name: "Ikorodu", Distance: 40},
		{Name: "Badagry", Distance: 55},
		{Name: "Epe", Distance: 70},
	}},
	{Name: "Nasarawa", BaseDistance: 800, Settlements: []Settlement{
		{Name: "Lafia", Distance: 830},
		{Name: "Keffi", Distance: 800},
	}},
	{Name: "Niger", BaseDistance: 650, Settlements: []Settlement{
		{Name: "Minna", Distance: 650},
	}},
	{Name: "Ogun", BaseDistance: 80, Settlements: []Settlement{
		{Name: "Abeokuta", Distance: 80},
		{Name: "Sagamu", Distance: 60},
		{Name: "Ijebu Ode", Distance: 110},
		{Name: "Ota", Distance: 40},
	}},
	{Name: "Ondo", BaseDistance: 300, Settlements: []Settlement{
		{Name: "Akure", Distance: 300},
		{Name: "Ondo", Distance: 270},
	}},
	{Name: "Osun", BaseDistance: 230, Settlements: []Settlement{
		{Name: "Osogbo", Distance: 230},
		{Name: "Ile-Ife", Distance: 220},
	}},
	{Name: "Oyo", BaseDistance: 130, Settlements: []Settlement{
		{Name: "Ibadan", Distance: 130},
		{Name: "Oyo", Distance: 180},
		{Name: "Ogbomoso", Distance: 230},
	}},
	{Name: "Plateau", BaseDistance: 950, Settlements: []Settlement{
		{Name: "Jos", Distance: 950},
	}},
	{Name: "Rivers", BaseDistance: 600, Settlements: []Settlement{
		{Name: "Port Harcourt", Distance: 600},
		{Name: "Bonny", Distance: 660},
	}},
	{Name: "Sokoto", BaseDistance: 1100, Settlements: []Settlement{
		{Name: "Sokoto", Distance: 1100},
	}},
	{Name: "Taraba", BaseDistance: 1300, Settlements: []Settlement{
		{Name: "Jalingo", Distance: 1300},
	}},
	{Name: "Yobe", BaseDistance: 1400, Settlements: []Settlement{
		{Name: "Damaturu", Distance: 1400},
	}},
	{Name: "Zamfara", BaseDistance: 1000, Settlements: []Settlement{
		{Name: "Gusau", Distance: 1000},
	}},
}

var (
	nigeriaOnce  sync.Once
	nigeriaTable *Table
)

// Nigeria returns the compiled-in table of the 36 states and the FCT.
func Nigeria() *Table {
	nigeriaOnce.Do(func() {
		t, err := NewTable(nigeriaRegions)
		if err != nil {
			panic(err)
		}
		nigeriaTable = t
	})
	return nigeriaTable
}
