package refdata

import "github.com/SscSPs/rjb_tranz/internal/core/domain"

// countries is the single country/currency table. When several countries share a
// currency, the first row wins for currency lookups.
var countries = []domain.Country{
	{Code: "GH", Name: "Ghana", Currency: "GHS", PhoneCode: "+233", Flag: "🇬🇭", Symbol: "₵", Region: domain.RegionAfrica},
	{Code: "NG", Name: "Nigeria", Currency: "NGN", PhoneCode: "+234", Flag: "🇳🇬", Symbol: "₦", Region: domain.RegionAfrica},
	{Code: "KE", Name: "Kenya", Currency: "KES", PhoneCode: "+254", Flag: "🇰🇪", Symbol: "KSh", Region: domain.RegionAfrica},
	{Code: "PH", Name: "Philippines", Currency: "PHP", PhoneCode: "+63", Flag: "🇵🇭", Symbol: "₱", Region: domain.RegionAsia},
	{Code: "IN", Name: "India", Currency: "INR", PhoneCode: "+91", Flag: "🇮🇳", Symbol: "₹", Region: domain.RegionAsia},
	{Code: "US", Name: "United States", Currency: "USD", PhoneCode: "+1", Flag: "🇺🇸", Symbol: "$", Region: domain.RegionNorthAmerica},
	{Code: "GB", Name: "United Kingdom", Currency: "GBP", PhoneCode: "+44", Flag: "🇬🇧", Symbol: "£", Region: domain.RegionEurope},
	{Code: "CA", Name: "Canada", Currency: "CAD", PhoneCode: "+1", Flag: "🇨🇦", Symbol: "C$", Region: domain.RegionNorthAmerica},
	{Code: "AU", Name: "Australia", Currency: "AUD", PhoneCode: "+61", Flag: "🇦🇺", Symbol: "A$", Region: domain.RegionOceania},
	{Code: "DE", Name: "Germany", Currency: "EUR", PhoneCode: "+49", Flag: "🇩🇪", Symbol: "€", Region: domain.RegionEurope},
	{Code: "JP", Name: "Japan", Currency: "JPY", PhoneCode: "+81", Flag: "🇯🇵", Symbol: "¥", Region: domain.RegionAsia},
	{Code: "CH", Name: "Switzerland", Currency: "CHF", PhoneCode: "+41", Flag: "🇨🇭", Symbol: "CHF", Region: domain.RegionEurope},
	{Code: "ZA", Name: "South Africa", Currency: "ZAR", PhoneCode: "+27", Flag: "🇿🇦", Symbol: "R", Region: domain.RegionAfrica},
	{Code: "AE", Name: "United Arab Emirates", Currency: "AED", PhoneCode: "+971", Flag: "🇦🇪", Symbol: "د.إ", Region: domain.RegionMiddleEast},
	{Code: "SA", Name: "Saudi Arabia", Currency: "SAR", PhoneCode: "+966", Flag: "🇸🇦", Symbol: "﷼", Region: domain.RegionMiddleEast},
	{Code: "EG", Name: "Egypt", Currency: "EGP", PhoneCode: "+20", Flag: "🇪🇬", Symbol: "E£", Region: domain.RegionAfrica},
	{Code: "MX", Name: "Mexico", Currency: "MXN", PhoneCode: "+52", Flag: "🇲🇽", Symbol: "Mex$", Region: domain.RegionNorthAmerica},
	{Code: "BR", Name: "Brazil", Currency: "BRL", PhoneCode: "+55", Flag: "🇧🇷", Symbol: "R$", Region: domain.RegionSouthAmerica},
	{Code: "CN", Name: "China", Currency: "CNY", PhoneCode: "+86", Flag: "🇨🇳", Symbol: "¥", Region: domain.RegionAsia},
	{Code: "SE", Name: "Sweden", Currency: "SEK", PhoneCode: "+46", Flag: "🇸🇪", Symbol: "kr", Region: domain.RegionEurope},
	{Code: "NO", Name: "Norway", Currency: "NOK", PhoneCode: "+47", Flag: "🇳🇴", Symbol: "kr", Region: domain.RegionEurope},
	{Code: "DK", Name: "Denmark", Currency: "DKK", PhoneCode: "+45", Flag: "🇩🇰", Symbol: "kr", Region: domain.RegionEurope},
	{Code: "SG", Name: "Singapore", Currency: "SGD", PhoneCode: "+65", Flag: "🇸🇬", Symbol: "S$", Region: domain.RegionAsia},
	{Code: "HK", Name: "Hong Kong", Currency: "HKD", PhoneCode: "+852", Flag: "🇭🇰", Symbol: "HK$", Region: domain.RegionAsia},
	{Code: "NZ", Name: "New Zealand", Currency: "NZD", PhoneCode: "+64", Flag: "🇳🇿", Symbol: "NZ$", Region: domain.RegionOceania},
	{Code: "TH", Name: "Thailand", Currency: "THB", PhoneCode: "+66", Flag: "🇹🇭", Symbol: "฿", Region: domain.RegionAsia},
	{Code: "MY", Name: "Malaysia", Currency: "MYR", PhoneCode: "+60", Flag: "🇲🇾", Symbol: "RM", Region: domain.RegionAsia},
	{Code: "ID", Name: "Indonesia", Currency: "IDR", PhoneCode: "+62", Flag: "🇮🇩", Symbol: "Rp", Region: domain.RegionAsia},
	{Code: "PK", Name: "Pakistan", Currency: "PKR", PhoneCode: "+92", Flag: "🇵🇰", Symbol: "₨", Region: domain.RegionAsia},
	{Code: "BD", Name: "Bangladesh", Currency: "BDT", PhoneCode: "+880", Flag: "🇧🇩", Symbol: "৳", Region: domain.RegionAsia},
	{Code: "LK", Name: "Sri Lanka", Currency: "LKR", PhoneCode: "+94", Flag: "🇱🇰", Symbol: "Rs", Region: domain.RegionAsia},
	{Code: "NP", Name: "Nepal", Currency: "NPR", PhoneCode: "+977", Flag: "🇳🇵", Symbol: "₨", Region: domain.RegionAsia},
	{Code: "VN", Name: "Vietnam", Currency: "VND", PhoneCode: "+84", Flag: "🇻🇳", Symbol: "₫", Region: domain.RegionAsia},
	{Code: "TR", Name: "Turkey", Currency: "TRY", PhoneCode: "+90", Flag: "🇹🇷", Symbol: "₺", Region: domain.RegionMiddleEast},
	{Code: "RU", Name: "Russia", Currency: "RUB", PhoneCode: "+7", Flag: "🇷🇺", Symbol: "₽", Region: domain.RegionEurope},
	{Code: "PL", Name: "Poland", Currency: "PLN", PhoneCode: "+48", Flag: "🇵🇱", Symbol: "zł", Region: domain.RegionEurope},
	{Code: "CZ", Name: "Czech Republic", Currency: "CZK", PhoneCode: "+420", Flag: "🇨🇿", Symbol: "Kč", Region: domain.RegionEurope},
	{Code: "HU", Name: "Hungary", Currency: "HUF", PhoneCode: "+36", Flag: "🇭🇺", Symbol: "Ft", Region: domain.RegionEurope},
	{Code: "RO", Name: "Romania", Currency: "RON", PhoneCode: "+40", Flag: "🇷🇴", Symbol: "lei", Region: domain.RegionEurope},
	{Code: "BG", Name: "Bulgaria", Currency: "BGN", PhoneCode: "+359", Flag: "🇧🇬", Symbol: "лв", Region: domain.RegionEurope},
	{Code: "HR", Name: "Croatia", Currency: "HRK", PhoneCode: "+385", Flag: "🇭🇷", Symbol: "kn", Region: domain.RegionEurope},
	{Code: "RS", Name: "Serbia", Currency: "RSD", PhoneCode: "+381", Flag: "🇷🇸", Symbol: "дин", Region: domain.RegionEurope},
	{Code: "UA", Name: "Ukraine", Currency: "UAH", PhoneCode: "+380", Flag: "🇺🇦", Symbol: "₴", Region: domain.RegionEurope},
	{Code: "KZ", Name: "Kazakhstan", Currency: "KZT", PhoneCode: "+7", Flag: "🇰🇿", Symbol: "₸", Region: domain.RegionAsia},
	{Code: "UZ", Name: "Uzbekistan", Currency: "UZS", PhoneCode: "+998", Flag: "🇺🇿", Symbol: "сум", Region: domain.RegionAsia},
	{Code: "AZ", Name: "Azerbaijan", Currency: "AZN", PhoneCode: "+994", Flag: "🇦🇿", Symbol: "₼", Region: domain.RegionAsia},
	{Code: "GE", Name: "Georgia", Currency: "GEL", PhoneCode: "+995", Flag: "🇬🇪", Symbol: "₾", Region: domain.RegionAsia},
	{Code: "AM", Name: "Armenia", Currency: "AMD", PhoneCode: "+374", Flag: "🇦🇲", Symbol: "֏", Region: domain.RegionAsia},
	{Code: "KG", Name: "Kyrgyzstan", Currency: "KGS", PhoneCode: "+996", Flag: "🇰🇬", Symbol: "с", Region: domain.RegionAsia},
	{Code: "TJ", Name: "Tajikistan", Currency: "TJS", PhoneCode: "+992", Flag: "🇹🇯", Symbol: "ЅМ", Region: domain.RegionAsia},
	{Code: "TM", Name: "Turkmenistan", Currency: "TMT", PhoneCode: "+993", Flag: "🇹🇲", Symbol: "m", Region: domain.RegionAsia},
	{Code: "BY", Name: "Belarus", Currency: "BYN", PhoneCode: "+375", Flag: "🇧🇾", Symbol: "Br", Region: domain.RegionEurope},
	{Code: "MD", Name: "Moldova", Currency: "MDL", PhoneCode: "+373", Flag: "🇲🇩", Symbol: "L", Region: domain.RegionEurope},
	{Code: "AL", Name: "Albania", Currency: "ALL", PhoneCode: "+355", Flag: "🇦🇱", Symbol: "L", Region: domain.RegionEurope},
	{Code: "BA", Name: "Bosnia and Herzegovina", Currency: "BAM", PhoneCode: "+387", Flag: "🇧🇦", Symbol: "KM", Region: domain.RegionEurope},
	{Code: "MK", Name: "North Macedonia", Currency: "MKD", PhoneCode: "+389", Flag: "🇲🇰", Symbol: "ден", Region: domain.RegionEurope},
	{Code: "ME", Name: "Montenegro", Currency: "EUR", PhoneCode: "+382", Flag: "🇲🇪", Symbol: "€", Region: domain.RegionEurope},
	{Code: "XK", Name: "Kosovo", Currency: "EUR", PhoneCode: "+383", Flag: "🇽🇰", Symbol: "€", Region: domain.RegionEurope},
	{Code: "IS", Name: "Iceland", Currency: "ISK", PhoneCode: "+354", Flag: "🇮🇸", Symbol: "kr", Region: domain.RegionEurope},
	{Code: "IE", Name: "Ireland", Currency: "EUR", PhoneCode: "+353", Flag: "🇮🇪", Symbol: "€", Region: domain.RegionEurope},
	{Code: "PT", Name: "Portugal", Currency: "EUR", PhoneCode: "+351", Flag: "🇵🇹", Symbol: "€", Region: domain.RegionEurope},
	{Code: "ES", Name: "Spain", Currency: "EUR", PhoneCode: "+34", Flag: "🇪🇸", Symbol: "€", Region: domain.RegionEurope},
	{Code: "FR", Name: "France", Currency: "EUR", PhoneCode: "+33", Flag: "🇫🇷", Symbol: "€", Region: domain.RegionEurope},
	{Code: "IT", Name: "Italy", Currency: "EUR", PhoneCode: "+39", Flag: "🇮🇹", Symbol: "€", Region: domain.RegionEurope},
	{Code: "BE", Name: "Belgium", Currency: "EUR", PhoneCode: "+32", Flag: "🇧🇪", Symbol: "€", Region: domain.RegionEurope},
	{Code: "NL", Name: "Netherlands", Currency: "EUR", PhoneCode: "+31", Flag: "🇳🇱", Symbol: "€", Region: domain.RegionEurope},
	{Code: "LU", Name: "Luxembourg", Currency: "EUR", PhoneCode: "+352", Flag: "🇱🇺", Symbol: "€", Region: domain.RegionEurope},
	{Code: "AT", Name: "Austria", Currency: "EUR", PhoneCode: "+43", Flag: "🇦🇹", Symbol: "€", Region: domain.RegionEurope},
	{Code: "GR", Name: "Greece", Currency: "EUR", PhoneCode: "+30", Flag: "🇬🇷", Symbol: "€", Region: domain.RegionEurope},
	{Code: "CY", Name: "Cyprus", Currency: "EUR", PhoneCode: "+357", Flag: "🇨🇾", Symbol: "€", Region: domain.RegionEurope},
	{Code: "MT", Name: "Malta", Currency: "EUR", PhoneCode: "+356", Flag: "🇲🇹", Symbol: "€", Region: domain.RegionEurope},
	{Code: "FI", Name: "Finland", Currency: "EUR", PhoneCode: "+358", Flag: "🇫🇮", Symbol: "€", Region: domain.RegionEurope},
	{Code: "EE", Name: "Estonia", Currency: "EUR", PhoneCode: "+372", Flag: "🇪🇪", Symbol: "€", Region: domain.RegionEurope},
	{Code: "LV", Name: "Latvia", Currency: "EUR", PhoneCode: "+371", Flag: "🇱🇻", Symbol: "€", Region: domain.RegionEurope},
	{Code: "LT", Name: "Lithuania", Currency: "EUR", PhoneCode: "+370", Flag: "🇱🇹", Symbol: "€", Region: domain.RegionEurope},
	{Code: "SK", Name: "Slovakia", Currency: "EUR", PhoneCode: "+421", Flag: "🇸🇰", Symbol: "€", Region: domain.RegionEurope},
	{Code: "SI", Name: "Slovenia", Currency: "EUR", PhoneCode: "+386", Flag: "🇸🇮", Symbol: "€", Region: domain.RegionEurope},
	{Code: "AD", Name: "Andorra", Currency: "EUR", PhoneCode: "+376", Flag: "🇦🇩", Symbol: "€", Region: domain.RegionEurope},
	{Code: "SM", Name: "San Marino", Currency: "EUR", PhoneCode: "+378", Flag: "🇸🇲", Symbol: "€", Region: domain.RegionEurope},
	{Code: "VA", Name: "Vatican City", Currency: "EUR", PhoneCode: "+379", Flag: "🇻🇦", Symbol: "€", Region: domain.RegionEurope},
	{Code: "MC", Name: "Monaco", Currency: "EUR", PhoneCode: "+377", Flag: "🇲🇨", Symbol: "€", Region: domain.RegionEurope},
	{Code: "LI", Name: "Liechtenstein", Currency: "CHF", PhoneCode: "+423", Flag: "🇱🇮", Symbol: "CHF", Region: domain.RegionEurope},
	{Code: "GI", Name: "Gibraltar", Currency: "GBP", PhoneCode: "+350", Flag: "🇬🇮", Symbol: "£", Region: domain.RegionEurope},
	{Code: "IM", Name: "Isle of Man", Currency: "GBP", PhoneCode: "+44", Flag: "🇮🇲", Symbol: "£", Region: domain.RegionEurope},
	{Code: "JE", Name: "Jersey", Currency: "GBP", PhoneCode: "+44", Flag: "🇯🇪", Symbol: "£", Region: domain.RegionEurope},
	{Code: "GG", Name: "Guernsey", Currency: "GBP", PhoneCode: "+44", Flag: "🇬🇬", Symbol: "£", Region: domain.RegionEurope},
}
