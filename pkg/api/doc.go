// Package api defines the wire messages and Connect bindings of the settlement
// service.
//
// Messages are plain Go structs carried with a JSON codec, so any Connect, gRPC
// or plain HTTP client that speaks application/json can call the service:
//
//	curl -H 'Content-Type: application/json' \
//	  -d '{"people":["A","B"],"transactions":[{"payer":"A","amount":10,"shares":{"A":5,"B":5}}]}' \
//	  http://localhost:8080/settleup.v1.SettlementService/Settle
//
// Amounts travel as JSON numbers and are decoded into Decimal, which keeps the
// literal text so no precision is lost before the server rounds to cents.
package api
