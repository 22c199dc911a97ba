// Package queueclient submits resolved download requests to the external
// queue service. The service is a sink only: this client posts a request
// record and maps the documented status codes onto sentinel errors.
package queueclient
