// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package countries

// registry lists every country a visit can count toward, grouped by
// continent in Continents order.
var registry = []Country{
	// Africa
	{Code: "DZ", Name: "Algeria", Continent: Africa},
	{Code: "AO", Name: "Angola", Continent: Africa},
	{Code: "BJ", Name: "Benin", Continent: Africa},
	{Code: "BW", Name: "Botswana", Continent: Africa},
	{Code: "BF", Name: "Burkina Faso", Continent: Africa},
	{Code: "BI", Name: "Burundi", Continent: Africa},
	{Code: "CV", Name: "Cabo Verde", Continent: Africa},
	{Code: "CM", Name: "Cameroon", Continent: Africa},
	{Code: "CF", Name: "Central African Republic", Continent: Africa},
	{Code: "TD", Name: "Chad", Continent: Africa},
	{Code: "KM", Name: "Comoros", Continent: Africa},
	{Code: "CG", Name: "Congo", Continent: Africa},
	{Code: "CD", Name: "DR Congo", Continent: Africa},
	{Code: "CI", Name: "Côte d'Ivoire", Continent: Africa},
	{Code: "DJ", Name: "Djibouti", Continent: Africa},
	{Code: "EG", Name: "Egypt", Continent: Africa},
	{Code: "GQ", Name: "Equatorial Guinea", Continent: Africa},
	{Code: "ER", Name: "Eritrea", Continent: Africa},
	{Code: "SZ", Name: "Eswatini", Continent: Africa},
	{Code: "ET", Name: "Ethiopia", Continent: Africa},
	{Code: "GA", Name: "Gabon", Continent: Africa},
	{Code: "GM", Name: "Gambia", Continent: Africa},
	{Code: "GH", Name: "Ghana", Continent: Africa},
	{Code: "GN", Name: "Guinea", Continent: Africa},
	{Code: "GW", Name: "Guinea-Bissau", Continent: Africa},
	{Code: "KE", Name: "Kenya", Continent: Africa},
	{Code: "LS", Name: "Lesotho", Continent: Africa},
	{Code: "LR", Name: "Liberia", Continent: Africa},
	{Code: "LY", Name: "Libya", Continent: Africa},
	{Code: "MG", Name: "Madagascar", Continent: Africa},
	{Code: "MW", Name: "Malawi", Continent: Africa},
	{Code: "ML", Name: "Mali", Continent: Africa},
	{Code: "MR", Name: "Mauritania", Continent: Africa},
	{Code: "MU", Name: "Mauritius", Continent: Africa},
	{Code: "MA", Name: "Morocco", Continent: Africa},
	{Code: "MZ", Name: "Mozambique", Continent: Africa},
	{Code: "NA", Name: "Namibia", Continent: Africa},
	{Code: "NE", Name: "Niger", Continent: Africa},
	{Code: "NG", Name: "Nigeria", Continent: Africa},
	{Code: "RW", Name: "Rwanda", Continent: Africa},
	{Code: "ST", Name: "São Tomé and Príncipe", Continent: Africa},
	{Code: "SN", Name: "Senegal", Continent: Africa},
	{Code: "SC", Name: "Seychelles", Continent: Africa},
	{Code: "SL", Name: "Sierra Leone", Continent: Africa},
	{Code: "SO", Name: "Somalia", Continent: Africa},
	{Code: "ZA", Name: "South Africa", Continent: Africa},
	{Code: "SS", Name: "South Sudan", Continent: Africa},
	{Code: "SD", Name: "Sudan", Continent: Africa},
	{Code: "TZ", Name: "Tanzania", Continent: Africa},
	{Code: "TG", Name: "Togo", Continent: Africa},
	{Code: "TN", Name: "Tunisia", Continent: Africa},
	{Code: "UG", Name: "Uganda", Continent: Africa},
	{Code: "ZM", Name: "Zambia", Continent: Africa},
	{Code: "ZW", Name: "Zimbabwe", Continent: Africa},
	// Asia
	{Code: "AF", Name: "Afghanistan", Continent: Asia},
	{Code: "AM", Name: "Armenia", Continent: Asia},
	{Code: "AZ", Name: "Azerbaijan", Continent: Asia},
	{Code: "BH", Name: "Bahrain", Continent: Asia},
	{Code: "BD", Name: "Bangladesh", Continent: Asia},
	{Code: "BT", Name: "Bhutan", Continent: Asia},
	{Code: "BN", Name: "Brunei", Continent: Asia},
	{Code: "KH", Name: "Cambodia", Continent: Asia},
	{Code: "CN", Name: "China", Continent: Asia},
	{Code: "GE", Name: "Georgia", Continent: Asia},
	{Code: "IN", Name: "India", Continent: Asia},
	{Code: "ID", Name: "Indonesia", Continent: Asia},
	{Code: "IR", Name: "Iran", Continent: Asia},
	{Code: "IQ", Name: "Iraq", Continent: Asia},
	{Code: "IL", Name: "Israel", Continent: Asia},
	{Code: "JP", Name: "Japan", Continent: Asia},
	{Code: "JO", Name: "Jordan", Continent: Asia},
	{Code: "KZ", Name: "Kazakhstan", Continent: Asia},
	{Code: "KW", Name: "Kuwait", Continent: Asia},
	{Code: "KG", Name: "Kyrgyzstan", Continent: Asia},
	{Code: "LA", Name: "Laos", Continent: Asia},
	{Code: "LB", Name: "Lebanon", Continent: Asia},
	{Code: "MY", Name: "Malaysia", Continent: Asia},
	{Code: "MV", Name: "Maldives", Continent: Asia},
	{Code: "MN", Name: "Mongolia", Continent: Asia},
	{Code: "MM", Name: "Myanmar", Continent: Asia},
	{Code: "NP", Name: "Nepal", Continent: Asia},
	{Code: "KP", Name: "North Korea", Continent: Asia},
	{Code: "OM", Name: "Oman", Continent: Asia},
	{Code: "PK", Name: "Pakistan", Continent: Asia},
	{Code: "PS", Name: "Palestine", Continent: Asia},
	{Code: "PH", Name: "Philippines", Continent: Asia},
	{Code: "QA", Name: "Qatar", Continent: Asia},
	{Code: "SA", Name: "Saudi Arabia", Continent: Asia},
	{Code: "SG", Name: "Singapore", Continent: Asia},
	{Code: "KR", Name: "South Korea", Continent: Asia},
	{Code: "LK", Name: "Sri Lanka", Continent: Asia},
	{Code: "SY", Name: "Syria", Continent: Asia},
	{Code: "TJ", Name: "Tajikistan", Continent: Asia},
	{Code: "TH", Name: "Thailand", Continent: Asia},
	{Code: "TL", Name: "Timor-Leste", Continent: Asia},
	{Code: "TR", Name: "Turkey", Continent: Asia},
	{Code: "TM", Name: "Turkmenistan", Continent: Asia},
	{Code: "AE", Name: "United Arab Emirates", Continent: Asia},
	{Code: "UZ", Name: "Uzbekistan", Continent: Asia},
	{Code: "VN", Name: "Vietnam", Continent: Asia},
	{Code: "YE", Name: "Yemen", Continent: Asia},
	// Europe
	{Code: "AL", Name: "Albania", Continent: Europe},
	{Code: "AD", Name: "Andorra", Continent: Europe},
	{Code: "AT", Name: "Austria", Continent: Europe},
	{Code: "BY", Name: "Belarus", Continent: Europe},
	{Code: "BE", Name: "Belgium", Continent: Europe},
	{Code: "BA", Name: "Bosnia and Herzegovina", Continent: Europe},
	{Code: "BG", Name: "Bulgaria", Continent: Europe},
	{Code: "HR", Name: "Croatia", Continent: Europe},
	{Code: "CY", Name: "Cyprus", Continent: Europe},
	{Code: "CZ", Name: "Czechia", Continent: Europe},
	{Code: "DK", Name: "Denmark", Continent: Europe},
	{Code: "EE", Name: "Estonia", Continent: Europe},
	{Code: "FI", Name: "Finland", Continent: Europe},
	{Code: "FR", Name: "France", Continent: Europe},
	{Code: "DE", Name: "Germany", Continent: Europe},
	{Code: "GR", Name: "Greece", Continent: Europe},
	{Code: "HU", Name: "Hungary", Continent: Europe},
	{Code: "IS", Name: "Iceland", Continent: Europe},
	{Code: "IE", Name: "Ireland", Continent: Europe},
	{Code: "IT", Name: "Italy", Continent: Europe},
	{Code: "LV", Name: "Latvia", Continent: Europe},
	{Code: "LI", Name: "Liechtenstein", Continent: Europe},
	{Code: "LT", Name: "Lithuania", Continent: Europe},
	{Code: "LU", Name: "Luxembourg", Continent: Europe},
	{Code: "MT", Name: "Malta", Continent: Europe},
	{Code: "MD", Name: "Moldova", Continent: Europe},
	{Code: "MC", Name: "Monaco", Continent: Europe},
	{Code: "ME", Name: "Montenegro", Continent: Europe},
	{Code: "NL", Name: "Netherlands", Continent: Europe},
	{Code: "MK", Name: "North Macedonia", Continent: Europe},
	{Code: "NO", Name: "Norway", Continent: Europe},
	{Code: "PL", Name: "Poland", Continent: Europe},
	{Code: "PT", Name: "Portugal", Continent: Europe},
	{Code: "RO", Name: "Romania", Continent: Europe},
	{Code: "RU", Name: "Russia", Continent: Europe},
	{Code: "SM", Name: "San Marino", Continent: Europe},
	{Code: "RS", Name: "Serbia", Continent: Europe},
	{Code: "SK", Name: "Slovakia", Continent: Europe},
	{Code: "SI", Name: "Slovenia", Continent: Europe},
	{Code: "ES", Name: "Spain", Continent: Europe},
	{Code: "SE", Name: "Sweden", Continent: Europe},
	{Code: "CH", Name: "Switzerland", Continent: Europe},
	{Code: "UA", Name: "Ukraine", Continent: Europe},
	{Code: "GB", Name: "United Kingdom", Continent: Europe},
	{Code: "VA", Name: "Vatican City", Continent: Europe},
	// North America
	{Code: "AG", Name: "Antigua and Barbuda", Continent: NorthAmerica},
	{Code: "BS", Name: "Bahamas", Continent: NorthAmerica},
	{Code: "BB", Name: "Barbados", Continent: NorthAmerica},
	{Code: "BZ", Name: "Belize", Continent: NorthAmerica},
	{Code: "CA", Name: "Canada", Continent: NorthAmerica},
	{Code: "CR", Name: "Costa Rica", Continent: NorthAmerica},
	{Code: "CU", Name: "Cuba", Continent: NorthAmerica},
	{Code: "DM", Name: "Dominica", Continent: NorthAmerica},
	{Code: "DO", Name: "Dominican Republic", Continent: NorthAmerica},
	{Code: "SV", Name: "El Salvador", Continent: NorthAmerica},
	{Code: "GD", Name: "Grenada", Continent: NorthAmerica},
	{Code: "GT", Name: "Guatemala", Continent: NorthAmerica},
	{Code: "HT", Name: "Haiti", Continent: NorthAmerica},
	{Code: "HN", Name: "Honduras", Continent: NorthAmerica},
	{Code: "JM", Name: "Jamaica", Continent: NorthAmerica},
	{Code: "MX", Name: "Mexico", Continent: NorthAmerica},
	{Code: "NI", Name: "Nicaragua", Continent: NorthAmerica},
	{Code: "PA", Name: "Panama", Continent: NorthAmerica},
	{Code: "KN", Name: "Saint Kitts and Nevis", Continent: NorthAmerica},
	{Code: "LC", Name: "Saint Lucia", Continent: NorthAmerica},
	{Code: "VC", Name: "Saint Vincent and the Grenadines", Continent: NorthAmerica},
	{Code: "TT", Name: "Trinidad and Tobago", Continent: NorthAmerica},
	{Code: "US", Name: "United States", Continent: NorthAmerica},
	// South America
	{Code: "AR", Name: "Argentina", Continent: SouthAmerica},
	{Code: "BO", Name: "Bolivia", Continent: SouthAmerica},
	{Code: "BR", Name: "Brazil", Continent: SouthAmerica},
	{Code: "CL", Name: "Chile", Continent: SouthAmerica},
	{Code: "CO", Name: "Colombia", Continent: SouthAmerica},
	{Code: "EC", Name: "Ecuador", Continent: SouthAmerica},
	{Code: "GY", Name: "Guyana", Continent: SouthAmerica},
	{Code: "PY", Name: "Paraguay", Continent: SouthAmerica},
	{Code: "PE", Name: "Peru", Continent: SouthAmerica},
	{Code: "SR", Name: "Suriname", Continent: SouthAmerica},
	{Code: "UY", Name: "Uruguay", Continent: SouthAmerica},
	{Code: "VE", Name: "Venezuela", Continent: SouthAmerica},
	// Oceania
	{Code: "AU", Name: "Australia", Continent: Oceania},
	{Code: "FJ", Name: "Fiji", Continent: Oceania},
	{Code: "KI", Name: "Kiribati", Continent: Oceania},
	{Code: "MH", Name: "Marshall Islands", Continent: Oceania},
	{Code: "FM", Name: "Micronesia", Continent: Oceania},
	{Code: "NR", Name: "Nauru", Continent: Oceania},
	{Code: "NZ", Name: "New Zealand", Continent: Oceania},
	{Code: "PW", Name: "Palau", Continent: Oceania},
	{Code: "PG", Name: "Papua New Guinea", Continent: Oceania},
	{Code: "WS", Name: "Samoa", Continent: Oceania},
	{Code: "SB", Name: "Solomon Islands", Continent: Oceania},
	{Code: "TO", Name: "Tonga", Continent: Oceania},
	{Code: "TV", Name: "Tuvalu", Continent: Oceania},
	{Code: "VU", Name: "Vanuatu", Continent: Oceania},
}
