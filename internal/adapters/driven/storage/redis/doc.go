// Package redis provides a shared cache backend on Redis. Several placemap
// processes pointed at the same Redis instance reuse each other's geocodes.
package redis
