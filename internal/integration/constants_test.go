package integration_test

const (
	TestWebhookSecret = "whsec_integration_test"

	// Checkout fixtures seeded by testdata/checkouts_up.sql
	TestOpenCheckoutId    = "cs_test_open"
	TestPaidCheckoutId    = "cs_test_paid"
	TestExpiredCheckoutId = "cs_test_expired"
	TestPaidOrderId       = "ord_seeded"
	TestCustomerEmail     = "traveller@example.com"

	// eSIM fixtures seeded by testdata/esims_up.sql
	TestICCID            = "8901260123456789011"
	TestICCIDBadChecksum = "8901260123456789010"
	TestICCIDNoProfile   = "890126012345678906"
	TestSMDPAddress      = "smdp.example.com"
	TestMatchingId       = "K2-1ABCD-XYZ"
)
