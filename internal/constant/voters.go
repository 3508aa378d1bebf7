package constant

// RegisteredVoters holds the registered Democratic voters of every California
// congressional district, ordered by district number starting at 1.
var RegisteredVoters = []int{
	110548, 190158, 126739, 113984, 175851, 152810, 139133, 96207, 137785, 109391,
	176945, 213197, 254996, 174555, 166820, 114496, 127752, 168333, 141411, 157707,
	96898, 98773, 91548, 126929, 138765, 147117, 156738, 186843, 149088, 195793,
	123096, 149584, 201383, 148353, 121005, 105253, 245199, 174956, 113792, 149079,
	111683, 86941, 208887, 196756, 105196, 106250, 158790, 106771, 104027, 89608,
	124064, 123977, 153213,
}
